package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per rendered fingerprint
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_path TEXT NOT NULL,
    output_path TEXT NOT NULL,
    content_hash TEXT,
    tokenizer TEXT NOT NULL,
    line_count INTEGER DEFAULT 0,
    distinct_tokens INTEGER NOT NULL,
    total_tokens INTEGER NOT NULL,
    dimension INTEGER NOT NULL,
    step REAL NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_path);
CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(content_hash);

-- Token counts: the aggregated frequency table of a run
CREATE TABLE IF NOT EXISTS token_counts (
    run_id INTEGER NOT NULL,
    token TEXT NOT NULL,
    count INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    PRIMARY KEY (run_id, token)
);

CREATE INDEX IF NOT EXISTS idx_token_counts_count ON token_counts(run_id, count DESC);
`
