// Package store persists flowcast entities in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowcast/internal/forecast"
	"flowcast/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("record not found")

const dateFormat = "2006-01-02"

// Store provides SQLite-backed persistence for all entity kinds. Every
// successful write bumps a monotonic revision counter so readers (the TUI,
// the daemon poll loop) can detect changes without diffing rows.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Revision returns the current write counter.
func (s *Store) Revision() (int64, error) {
	var rev int64
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'revision'").Scan(&rev)
	return rev, err
}

// write runs fn in a transaction and bumps the revision on success.
func (s *Store) write(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE meta SET value = value + 1 WHERE key = 'revision'"); err != nil {
		return err
	}
	return tx.Commit()
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Accounts ---

// SaveAccount inserts or replaces an account.
func (s *Store) SaveAccount(a model.Account) error {
	if !a.Type.Valid() {
		return fmt.Errorf("unknown account type %q", a.Type)
	}
	return s.write(func(tx *sql.Tx) error {
		var updated any
		if a.BalanceUpdatedAt != nil {
			updated = a.BalanceUpdatedAt.UTC().Format(time.RFC3339)
		}
		_, err := tx.Exec(`INSERT OR REPLACE INTO accounts
			(id, name, type, balance, balance_updated_at, owner)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, string(a.Type), a.Balance, updated, a.Owner)
		return err
	})
}

// UpdateBalance sets an account's balance and stamps the confirmation time.
func (s *Store) UpdateBalance(id string, balance int64, at time.Time) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE accounts SET balance = ?, balance_updated_at = ? WHERE id = ?`,
			balance, at.UTC().Format(time.RFC3339), id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// DeleteAccount removes an account.
func (s *Store) DeleteAccount(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM accounts WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// Accounts lists all accounts ordered by name.
func (s *Store) Accounts() ([]model.Account, error) {
	rows, err := s.db.Query(`SELECT id, name, type, balance, balance_updated_at, owner
		FROM accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		var updated, owner sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance, &updated, &owner); err != nil {
			return nil, err
		}
		a.Type = model.AccountType(typ)
		a.Owner = owner.String
		if updated.Valid && updated.String != "" {
			t, err := time.Parse(time.RFC3339, updated.String)
			if err == nil {
				a.BalanceUpdatedAt = &t
			}
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// --- Recurring incomes ---

// SaveRecurringIncome inserts or replaces a recurring income. The schedule
// shape is validated against the frequency here so bad rows never reach
// the expander.
func (s *Store) SaveRecurringIncome(in model.RecurringIncome) error {
	if !in.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q", in.Frequency)
	}
	if !in.Certainty.Valid() {
		return fmt.Errorf("unknown certainty %q", in.Certainty)
	}
	if err := forecast.ValidateSchedule(in.Schedule, in.Frequency); err != nil {
		return err
	}
	return s.write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO recurring_incomes
			(id, name, amount, frequency, schedule_kind, day_of_month, weekday,
			 first_day, second_day, certainty, active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, in.Name, in.Amount, string(in.Frequency), string(in.Schedule.Kind),
			in.Schedule.DayOfMonth, int(in.Schedule.Weekday),
			in.Schedule.FirstDay, in.Schedule.SecondDay,
			string(in.Certainty), boolInt(in.Active))
		return err
	})
}

// SetRecurringIncomeActive toggles an income without losing its schedule.
func (s *Store) SetRecurringIncomeActive(id string, active bool) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE recurring_incomes SET active = ? WHERE id = ?", boolInt(active), id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// DeleteRecurringIncome removes a recurring income.
func (s *Store) DeleteRecurringIncome(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM recurring_incomes WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// RecurringIncomes lists all recurring incomes ordered by name.
func (s *Store) RecurringIncomes() ([]model.RecurringIncome, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, frequency, schedule_kind,
		day_of_month, weekday, first_day, second_day, certainty, active
		FROM recurring_incomes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var incomes []model.RecurringIncome
	for rows.Next() {
		var in model.RecurringIncome
		var freq, kind, certainty string
		var weekday, active int
		if err := rows.Scan(&in.ID, &in.Name, &in.Amount, &freq, &kind,
			&in.Schedule.DayOfMonth, &weekday,
			&in.Schedule.FirstDay, &in.Schedule.SecondDay, &certainty, &active); err != nil {
			return nil, err
		}
		in.Frequency = model.Frequency(freq)
		in.Schedule.Kind = model.ScheduleKind(kind)
		in.Schedule.Weekday = time.Weekday(weekday)
		in.Certainty = model.Certainty(certainty)
		in.Active = active != 0
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// --- Single-shot incomes ---

// SaveSingleIncome inserts or replaces a one-off income.
func (s *Store) SaveSingleIncome(in model.SingleShotIncome) error {
	if !in.Certainty.Valid() {
		return fmt.Errorf("unknown certainty %q", in.Certainty)
	}
	return s.write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO single_incomes
			(id, name, amount, date, certainty) VALUES (?, ?, ?, ?, ?)`,
			in.ID, in.Name, in.Amount, in.Date.UTC().Format(dateFormat), string(in.Certainty))
		return err
	})
}

// DeleteSingleIncome removes a one-off income.
func (s *Store) DeleteSingleIncome(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM single_incomes WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// SingleIncomes lists all one-off incomes ordered by date.
func (s *Store) SingleIncomes() ([]model.SingleShotIncome, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, date, certainty
		FROM single_incomes ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var incomes []model.SingleShotIncome
	for rows.Next() {
		var in model.SingleShotIncome
		var dateStr, certainty string
		if err := rows.Scan(&in.ID, &in.Name, &in.Amount, &dateStr, &certainty); err != nil {
			return nil, err
		}
		in.Date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad date %q for income %s: %w", dateStr, in.ID, err)
		}
		in.Certainty = model.Certainty(certainty)
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// --- Fixed expenses ---

// SaveFixedExpense inserts or replaces a monthly expense.
func (s *Store) SaveFixedExpense(e model.FixedExpense) error {
	if e.DueDay < 1 || e.DueDay > 31 {
		return fmt.Errorf("due day %d out of range 1-31", e.DueDay)
	}
	return s.write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO fixed_expenses
			(id, name, amount, due_day, active) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Amount, e.DueDay, boolInt(e.Active))
		return err
	})
}

// SetFixedExpenseActive toggles an expense.
func (s *Store) SetFixedExpenseActive(id string, active bool) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE fixed_expenses SET active = ? WHERE id = ?", boolInt(active), id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// DeleteFixedExpense removes a monthly expense.
func (s *Store) DeleteFixedExpense(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM fixed_expenses WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// FixedExpenses lists monthly expenses ordered by due day.
func (s *Store) FixedExpenses() ([]model.FixedExpense, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, due_day, active
		FROM fixed_expenses ORDER BY due_day, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.FixedExpense
	for rows.Next() {
		var e model.FixedExpense
		var active int
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.DueDay, &active); err != nil {
			return nil, err
		}
		e.Active = active != 0
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// --- Single-shot expenses ---

// SaveSingleExpense inserts or replaces a one-off expense.
func (s *Store) SaveSingleExpense(e model.SingleShotExpense) error {
	return s.write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO single_expenses
			(id, name, amount, date) VALUES (?, ?, ?, ?)`,
			e.ID, e.Name, e.Amount, e.Date.UTC().Format(dateFormat))
		return err
	})
}

// DeleteSingleExpense removes a one-off expense.
func (s *Store) DeleteSingleExpense(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM single_expenses WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// SingleExpenses lists one-off expenses ordered by date.
func (s *Store) SingleExpenses() ([]model.SingleShotExpense, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, date
		FROM single_expenses ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.SingleShotExpense
	for rows.Next() {
		var e model.SingleShotExpense
		var dateStr string
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &dateStr); err != nil {
			return nil, err
		}
		e.Date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad date %q for expense %s: %w", dateStr, e.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// --- Credit cards ---

// SaveCreditCard inserts or replaces a card.
func (s *Store) SaveCreditCard(c model.CreditCard) error {
	if c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("due day %d out of range 1-31", c.DueDay)
	}
	return s.write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT OR REPLACE INTO credit_cards
			(id, name, statement_balance, due_day, owner) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.StatementBalance, c.DueDay, c.Owner)
		return err
	})
}

// DeleteCreditCard removes a card; its future statements cascade.
func (s *Store) DeleteCreditCard(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM credit_cards WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// CreditCards lists all cards ordered by name.
func (s *Store) CreditCards() ([]model.CreditCard, error) {
	rows, err := s.db.Query(`SELECT id, name, statement_balance, due_day, owner
		FROM credit_cards ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cards []model.CreditCard
	for rows.Next() {
		var c model.CreditCard
		var owner sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.StatementBalance, &c.DueDay, &owner); err != nil {
			return nil, err
		}
		c.Owner = owner.String
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// --- Future statements ---

// SaveFutureStatement inserts or replaces the override for one card-month.
// The UNIQUE(card_id, target_month, target_year) constraint makes a second
// insert for the same month replace the first.
func (s *Store) SaveFutureStatement(fs model.FutureStatement) error {
	if fs.TargetMonth < 1 || fs.TargetMonth > 12 {
		return fmt.Errorf("target month %d out of range 1-12", fs.TargetMonth)
	}
	return s.write(func(tx *sql.Tx) error {
		// Clear any previous override for the same card-month before
		// inserting so a new ID does not trip the uniqueness constraint.
		if _, err := tx.Exec(`DELETE FROM future_statements
			WHERE card_id = ? AND target_month = ? AND target_year = ?`,
			fs.CardID, fs.TargetMonth, fs.TargetYear); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO future_statements
			(id, card_id, amount, target_month, target_year) VALUES (?, ?, ?, ?, ?)`,
			fs.ID, fs.CardID, fs.Amount, fs.TargetMonth, fs.TargetYear)
		return err
	})
}

// DeleteFutureStatement removes an override.
func (s *Store) DeleteFutureStatement(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM future_statements WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRows(res)
	})
}

// FutureStatements lists all overrides ordered by year then month.
func (s *Store) FutureStatements() ([]model.FutureStatement, error) {
	rows, err := s.db.Query(`SELECT id, card_id, amount, target_month, target_year
		FROM future_statements ORDER BY target_year, target_month`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var statements []model.FutureStatement
	for rows.Next() {
		var fs model.FutureStatement
		if err := rows.Scan(&fs.ID, &fs.CardID, &fs.Amount, &fs.TargetMonth, &fs.TargetYear); err != nil {
			return nil, err
		}
		statements = append(statements, fs)
	}
	return statements, rows.Err()
}

// LoadEntities reads the full entity snapshot for a projection run.
func (s *Store) LoadEntities() (model.EntitySet, error) {
	var set model.EntitySet
	var err error

	if set.Accounts, err = s.Accounts(); err != nil {
		return set, fmt.Errorf("loading accounts: %w", err)
	}
	if set.RecurringIncomes, err = s.RecurringIncomes(); err != nil {
		return set, fmt.Errorf("loading recurring incomes: %w", err)
	}
	if set.SingleIncomes, err = s.SingleIncomes(); err != nil {
		return set, fmt.Errorf("loading single incomes: %w", err)
	}
	if set.FixedExpenses, err = s.FixedExpenses(); err != nil {
		return set, fmt.Errorf("loading fixed expenses: %w", err)
	}
	if set.SingleExpenses, err = s.SingleExpenses(); err != nil {
		return set, fmt.Errorf("loading single expenses: %w", err)
	}
	if set.CreditCards, err = s.CreditCards(); err != nil {
		return set, fmt.Errorf("loading credit cards: %w", err)
	}
	if set.FutureStatements, err = s.FutureStatements(); err != nil {
		return set, fmt.Errorf("loading future statements: %w", err)
	}
	return set, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
