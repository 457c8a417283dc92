package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    type                 TEXT NOT NULL,
    balance              INTEGER NOT NULL,
    balance_updated_at   TEXT,
    owner                TEXT
);

CREATE TABLE IF NOT EXISTS recurring_incomes (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    frequency            TEXT NOT NULL,
    schedule_kind        TEXT NOT NULL,
    day_of_month         INTEGER,
    weekday              INTEGER,
    first_day            INTEGER,
    second_day           INTEGER,
    certainty            TEXT NOT NULL,
    active               INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS single_incomes (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    certainty            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    due_day              INTEGER NOT NULL,
    active               INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS single_expenses (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    date                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_cards (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    statement_balance    INTEGER NOT NULL,
    due_day              INTEGER NOT NULL,
    owner                TEXT
);

CREATE TABLE IF NOT EXISTS future_statements (
    id                   TEXT PRIMARY KEY,
    card_id              TEXT NOT NULL REFERENCES credit_cards(id) ON DELETE CASCADE,
    amount               INTEGER NOT NULL,
    target_month         INTEGER NOT NULL,
    target_year          INTEGER NOT NULL,
    UNIQUE (card_id, target_month, target_year)
);

CREATE TABLE IF NOT EXISTS meta (
    key                  TEXT PRIMARY KEY,
    value                INTEGER NOT NULL
);

INSERT OR IGNORE INTO meta (key, value) VALUES ('revision', 0);

CREATE INDEX IF NOT EXISTS idx_single_incomes_date ON single_incomes(date);
CREATE INDEX IF NOT EXISTS idx_single_expenses_date ON single_expenses(date);
CREATE INDEX IF NOT EXISTS idx_future_statements_card ON future_statements(card_id);
`
