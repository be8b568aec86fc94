package storage

const schema = `
CREATE TABLE IF NOT EXISTS requests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id TEXT UNIQUE NOT NULL,
    email TEXT NOT NULL,
    sequence_length INTEGER NOT NULL DEFAULT 0,
    sequence2_length INTEGER NOT NULL DEFAULT 0,
    submitted_at DATETIME NOT NULL,
    state TEXT NOT NULL DEFAULT 'PENDING',
    failure_kind TEXT DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_requests_submitted_at ON requests(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_requests_request_id ON requests(request_id);
`
