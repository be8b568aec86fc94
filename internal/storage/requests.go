package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RequestInfo contains metadata about an analysis request. Sequences
// themselves live on disk in the workspace; only their lengths are kept
// here.
type RequestInfo struct {
	RequestID       string    `json:"request_id"`
	Email           string    `json:"email"`
	SequenceLength  int       `json:"sequence_length"`
	Sequence2Length int       `json:"sequence2_length"`
	SubmittedAt     time.Time `json:"submitted_at"`
	State           string    `json:"state"`        // PENDING, STAGE1_RUNNING, ..., DONE, FAILED
	FailureKind     string    `json:"failure_kind"` // empty unless FAILED
}

// RequestStore handles request persistence in SQLite
type RequestStore struct {
	db          *DB
	maxRequests int
}

// NewRequestStore creates a new request store
func NewRequestStore(db *DB, maxRequests int) *RequestStore {
	if maxRequests <= 0 {
		maxRequests = 1000 // Default maximum retained requests
	}
	return &RequestStore{
		db:          db,
		maxRequests: maxRequests,
	}
}

// RecordRequest stores request metadata in SQLite
func (s *RequestStore) RecordRequest(req RequestInfo) error {
	query := `
		INSERT INTO requests (
			request_id, email, sequence_length, sequence2_length,
			submitted_at, state, failure_kind
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(request_id) DO UPDATE SET
			email = excluded.email,
			sequence_length = excluded.sequence_length,
			sequence2_length = excluded.sequence2_length,
			state = excluded.state,
			failure_kind = excluded.failure_kind,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.db.Exec(query,
		req.RequestID, req.Email, req.SequenceLength, req.Sequence2Length,
		req.SubmittedAt, req.State, req.FailureKind,
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	// Cleanup old requests if exceeding max
	if err := s.cleanupOldRequests(); err != nil {
		// Log but don't fail
		fmt.Printf("Warning: failed to cleanup old requests: %v\n", err)
	}

	return nil
}

// GetRequest retrieves a request by its identifier
func (s *RequestStore) GetRequest(requestID string) (*RequestInfo, error) {
	query := `
		SELECT request_id, email, sequence_length, sequence2_length,
			   submitted_at, state, failure_kind
		FROM requests
		WHERE request_id = ?
	`

	var req RequestInfo
	err := s.db.QueryRow(query, requestID).Scan(
		&req.RequestID, &req.Email, &req.SequenceLength, &req.Sequence2Length,
		&req.SubmittedAt, &req.State, &req.FailureKind,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("request not found: %s", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return &req, nil
}

// GetRecentRequests retrieves the N most recent requests
func (s *RequestStore) GetRecentRequests(limit int) ([]*RequestInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT request_id, email, sequence_length, sequence2_length,
			   submitted_at, state, failure_kind
		FROM requests
		ORDER BY submitted_at DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []*RequestInfo
	for rows.Next() {
		var req RequestInfo
		err := rows.Scan(
			&req.RequestID, &req.Email, &req.SequenceLength, &req.Sequence2Length,
			&req.SubmittedAt, &req.State, &req.FailureKind,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

// IsTerminalState returns true if the state is a final state that should not be overwritten.
func IsTerminalState(state string) bool {
	switch state {
	case "DONE", "FAILED":
		return true
	}
	return false
}

// UpdateRequestState updates the state of a request.
// Terminal states (DONE, FAILED) are never overwritten.
func (s *RequestStore) UpdateRequestState(requestID, state, failureKind string) error {
	query := `
		UPDATE requests
		SET state = ?, failure_kind = ?, updated_at = CURRENT_TIMESTAMP
		WHERE request_id = ?
		AND state NOT IN ('DONE', 'FAILED')
	`

	_, err := s.db.Exec(query, state, failureKind, requestID)
	if err != nil {
		return fmt.Errorf("failed to update request state: %w", err)
	}

	// Request not found or already terminal, both acceptable
	return nil
}

// cleanupOldRequests removes old requests exceeding the maximum count
func (s *RequestStore) cleanupOldRequests() error {
	query := `
		DELETE FROM requests
		WHERE id NOT IN (
			SELECT id FROM requests
			ORDER BY submitted_at DESC
			LIMIT ?
		)
	`

	_, err := s.db.Exec(query, s.maxRequests)
	return err
}
