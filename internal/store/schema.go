package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS log_archive (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    title                TEXT NOT NULL,
    subtitle             TEXT NOT NULL DEFAULT '',
    logged_at            TEXT NOT NULL,
    archived_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_log_archive_logged ON log_archive(logged_at);
`
