package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStore_RecordAndGetRequest(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 100)

	req := RequestInfo{
		RequestID:       "20250101-000000_test-uuid",
		Email:           "a@b.com",
		SequenceLength:  4,
		Sequence2Length: 4,
		SubmittedAt:     time.Now().UTC().Truncate(time.Second),
		State:           "PENDING",
	}

	// Record request
	err = store.RecordRequest(req)
	require.NoError(t, err)

	// Get request
	retrieved, err := store.GetRequest("20250101-000000_test-uuid")
	require.NoError(t, err)
	assert.Equal(t, req.RequestID, retrieved.RequestID)
	assert.Equal(t, req.Email, retrieved.Email)
	assert.Equal(t, req.SequenceLength, retrieved.SequenceLength)
	assert.Equal(t, req.Sequence2Length, retrieved.Sequence2Length)
	assert.Equal(t, req.State, retrieved.State)
	assert.Empty(t, retrieved.FailureKind)
}

func TestRequestStore_GetRequestNotFound(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 100)

	_, err = store.GetRequest("nonexistent-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request not found")
}

func TestRequestStore_UpdateRequestState(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 100)

	req := RequestInfo{
		RequestID:   "req-1",
		Email:       "a@b.com",
		SubmittedAt: time.Now().UTC(),
		State:       "PENDING",
	}
	require.NoError(t, store.RecordRequest(req))

	err = store.UpdateRequestState("req-1", "STAGE1_RUNNING", "")
	require.NoError(t, err)

	retrieved, err := store.GetRequest("req-1")
	require.NoError(t, err)
	assert.Equal(t, "STAGE1_RUNNING", retrieved.State)
}

func TestRequestStore_TerminalStateNotOverwritten(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 100)

	req := RequestInfo{
		RequestID:   "req-2",
		Email:       "a@b.com",
		SubmittedAt: time.Now().UTC(),
		State:       "PENDING",
	}
	require.NoError(t, store.RecordRequest(req))

	require.NoError(t, store.UpdateRequestState("req-2", "FAILED", "Stage1Error"))
	require.NoError(t, store.UpdateRequestState("req-2", "STAGE2_RUNNING", ""))

	retrieved, err := store.GetRequest("req-2")
	require.NoError(t, err)
	assert.Equal(t, "FAILED", retrieved.State)
	assert.Equal(t, "Stage1Error", retrieved.FailureKind)
}

func TestRequestStore_GetRecentRequestsOrdering(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 100)

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.RecordRequest(RequestInfo{
			RequestID:   id,
			Email:       "a@b.com",
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			State:       "PENDING",
		}))
	}

	recent, err := store.GetRecentRequests(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "new", recent[0].RequestID)
	assert.Equal(t, "mid", recent[1].RequestID)
}

func TestRequestStore_CleanupOldRequests(t *testing.T) {
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewRequestStore(db, 2)

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.RecordRequest(RequestInfo{
			RequestID:   id,
			Email:       "a@b.com",
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			State:       "PENDING",
		}))
	}

	recent, err := store.GetRecentRequests(10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	_, err = store.GetRequest("a")
	assert.Error(t, err)
}

func TestIsTerminalState(t *testing.T) {
	assert.True(t, IsTerminalState("DONE"))
	assert.True(t, IsTerminalState("FAILED"))
	assert.False(t, IsTerminalState("PENDING"))
	assert.False(t, IsTerminalState("STAGE1_RUNNING"))
}
