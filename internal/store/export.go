package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"flowcast/internal/model"
)

// backupVersion is bumped when the backup document shape changes.
const backupVersion = 1

// Backup is the portable JSON form of the full entity set, for moving data
// between machines or keeping a plain-text copy outside the database.
type Backup struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Entities   model.EntitySet `json:"entities"`
}

// Export writes the full entity set as indented JSON.
func (s *Store) Export(w io.Writer) error {
	entities, err := s.LoadEntities()
	if err != nil {
		return err
	}
	b := Backup{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Entities:   entities,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Import replaces all stored entities with the backup's contents in one
// transaction. A failed import leaves the database untouched.
func (s *Store) Import(r io.Reader) error {
	var b Backup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return fmt.Errorf("decoding backup: %w", err)
	}
	if b.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %d", b.Version)
	}

	return s.write(func(tx *sql.Tx) error {
		// Children first so card deletes do not cascade over fresh rows.
		for _, table := range []string{
			"future_statements", "credit_cards", "single_expenses",
			"fixed_expenses", "single_incomes", "recurring_incomes", "accounts",
		} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return err
			}
		}

		for _, a := range b.Entities.Accounts {
			var updated any
			if a.BalanceUpdatedAt != nil {
				updated = a.BalanceUpdatedAt.UTC().Format(time.RFC3339)
			}
			if _, err := tx.Exec(`INSERT INTO accounts
				(id, name, type, balance, balance_updated_at, owner)
				VALUES (?, ?, ?, ?, ?, ?)`,
				a.ID, a.Name, string(a.Type), a.Balance, updated, a.Owner); err != nil {
				return fmt.Errorf("importing account %s: %w", a.ID, err)
			}
		}
		for _, in := range b.Entities.RecurringIncomes {
			if _, err := tx.Exec(`INSERT INTO recurring_incomes
				(id, name, amount, frequency, schedule_kind, day_of_month, weekday,
				 first_day, second_day, certainty, active)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				in.ID, in.Name, in.Amount, string(in.Frequency), string(in.Schedule.Kind),
				in.Schedule.DayOfMonth, int(in.Schedule.Weekday),
				in.Schedule.FirstDay, in.Schedule.SecondDay,
				string(in.Certainty), boolInt(in.Active)); err != nil {
				return fmt.Errorf("importing income %s: %w", in.ID, err)
			}
		}
		for _, in := range b.Entities.SingleIncomes {
			if _, err := tx.Exec(`INSERT INTO single_incomes
				(id, name, amount, date, certainty) VALUES (?, ?, ?, ?, ?)`,
				in.ID, in.Name, in.Amount, in.Date.UTC().Format(dateFormat),
				string(in.Certainty)); err != nil {
				return fmt.Errorf("importing income %s: %w", in.ID, err)
			}
		}
		for _, e := range b.Entities.FixedExpenses {
			if _, err := tx.Exec(`INSERT INTO fixed_expenses
				(id, name, amount, due_day, active) VALUES (?, ?, ?, ?, ?)`,
				e.ID, e.Name, e.Amount, e.DueDay, boolInt(e.Active)); err != nil {
				return fmt.Errorf("importing expense %s: %w", e.ID, err)
			}
		}
		for _, e := range b.Entities.SingleExpenses {
			if _, err := tx.Exec(`INSERT INTO single_expenses
				(id, name, amount, date) VALUES (?, ?, ?, ?)`,
				e.ID, e.Name, e.Amount, e.Date.UTC().Format(dateFormat)); err != nil {
				return fmt.Errorf("importing expense %s: %w", e.ID, err)
			}
		}
		for _, c := range b.Entities.CreditCards {
			if _, err := tx.Exec(`INSERT INTO credit_cards
				(id, name, statement_balance, due_day, owner) VALUES (?, ?, ?, ?, ?)`,
				c.ID, c.Name, c.StatementBalance, c.DueDay, c.Owner); err != nil {
				return fmt.Errorf("importing card %s: %w", c.ID, err)
			}
		}
		for _, fs := range b.Entities.FutureStatements {
			if _, err := tx.Exec(`INSERT INTO future_statements
				(id, card_id, amount, target_month, target_year)
				VALUES (?, ?, ?, ?, ?)`,
				fs.ID, fs.CardID, fs.Amount, fs.TargetMonth, fs.TargetYear); err != nil {
				return fmt.Errorf("importing statement %s: %w", fs.ID, err)
			}
		}
		return nil
	})
}
