package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidpost/internal/domain/sync"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	storage, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	return storage
}

func TestMutationLog_RecordAndBatch(t *testing.T) {
	storage := newTestStorage(t)
	log := NewMutationLog(storage)

	tempID := sync.NewTempID()
	editedAt := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, log.RecordCreate(sync.ModelPatient, tempID,
		map[string]any{"name": "Amina"}))
	require.NoError(t, log.RecordUpdate(sync.ModelPatient, "42",
		map[string]any{"village": "Kigoma"}, editedAt))
	require.NoError(t, log.RecordDelete(sync.ModelActivity, "7"))

	batch, maxSeq, err := log.CurrentBatch()

	require.NoError(t, err)
	require.Len(t, batch, 3)
	assert.Equal(t, int64(3), maxSeq)

	// Order of entry is preserved.
	assert.Equal(t, sync.KindCreate, batch[0].Kind)
	assert.Equal(t, tempID, batch[0].TempID)
	assert.Zero(t, batch[0].ID)
	assert.Equal(t, "Amina", batch[0].Data["name"])

	assert.Equal(t, sync.KindUpdate, batch[1].Kind)
	assert.Equal(t, int64(42), batch[1].ID)
	assert.Empty(t, batch[1].TempID)
	require.NotNil(t, batch[1].LastUpdatedAt)
	assert.True(t, batch[1].LastUpdatedAt.Equal(editedAt))

	assert.Equal(t, sync.KindDelete, batch[2].Kind)
	assert.Equal(t, sync.ModelActivity, batch[2].Model)
	assert.Equal(t, int64(7), batch[2].ID)
}

func TestMutationLog_Acknowledge(t *testing.T) {
	storage := newTestStorage(t)
	log := NewMutationLog(storage)

	require.NoError(t, log.RecordCreate(sync.ModelPatient, sync.NewTempID(),
		map[string]any{"name": "A"}))
	require.NoError(t, log.RecordCreate(sync.ModelPatient, sync.NewTempID(),
		map[string]any{"name": "B"}))

	_, maxSeq, err := log.CurrentBatch()
	require.NoError(t, err)

	// Entry added while the batch is in flight must survive the ack.
	require.NoError(t, log.RecordDelete(sync.ModelPatient, "5"))

	require.NoError(t, log.Acknowledge(maxSeq))

	batch, _, err := log.CurrentBatch()
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, sync.KindDelete, batch[0].Kind)

	count, err := log.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMutationLog_EmptyBatch(t *testing.T) {
	log := NewMutationLog(newTestStorage(t))

	batch, maxSeq, err := log.CurrentBatch()

	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Zero(t, maxSeq)
}

func TestMutationLog_CorruptEntityID(t *testing.T) {
	storage := newTestStorage(t)
	log := NewMutationLog(storage)

	require.NoError(t, storage.AppendMutation(&LogEntry{
		Model:     sync.ModelPatient,
		Kind:      sync.KindDelete,
		EntityID:  "not-an-id",
		CreatedAt: time.Now(),
	}))

	_, _, err := log.CurrentBatch()

	assert.Error(t, err)
}
