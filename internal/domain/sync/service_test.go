package sync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"aidpost/internal/domain/activity"
	"aidpost/internal/domain/consultation"
	"aidpost/internal/domain/patient"
)

// memStore is an in-memory EntityStore with the same contract as the
// postgres implementation: ownership in every predicate, last-write
// timestamp check on update, benign no-op delete.
type memPatientRow struct {
	owner       int
	name        string
	location    string
	contact     string
	age         *int
	extra       json.RawMessage
	lastUpdated time.Time
}

type memConsultationRow struct {
	owner       int
	patientID   int64
	symptoms    string
	notes       string
	status      consultation.Status
	extra       json.RawMessage
	lastUpdated time.Time
}

type memActivityRow struct {
	owner       int
	message     string
	read        bool
	patientID   *int64
	lastUpdated time.Time
}

type memStore struct {
	nextID        int64
	clock         time.Time
	patients      map[int64]memPatientRow
	consultations map[int64]memConsultationRow
	activities    map[int64]memActivityRow
}

func newMemStore(clock time.Time) *memStore {
	return &memStore{
		clock:         clock,
		patients:      map[int64]memPatientRow{},
		consultations: map[int64]memConsultationRow{},
		activities:    map[int64]memActivityRow{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore(s.clock)
	c.nextID = s.nextID
	for k, v := range s.patients {
		c.patients[k] = v
	}
	for k, v := range s.consultations {
		c.consultations[k] = v
	}
	for k, v := range s.activities {
		c.activities[k] = v
	}
	return c
}

func (s *memStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *memStore) CreatePatient(_ context.Context, ownerID int, f *patient.Fields) (int64, error) {
	id := s.newID()
	s.patients[id] = memPatientRow{
		owner:       ownerID,
		name:        deref(f.Name),
		location:    deref(f.Location),
		contact:     deref(f.Contact),
		age:         f.Age,
		extra:       f.Extra,
		lastUpdated: s.clock,
	}
	return id, nil
}

func (s *memStore) UpdatePatient(_ context.Context, ownerID int, id int64, f *patient.Fields, notNewerThan time.Time) error {
	row, ok := s.patients[id]
	if !ok || row.owner != ownerID || row.lastUpdated.After(notNewerThan) {
		return ErrUpdateConflict
	}
	if f.Name != nil {
		row.name = *f.Name
	}
	if f.Location != nil {
		row.location = *f.Location
	}
	if f.Contact != nil {
		row.contact = *f.Contact
	}
	if f.Age != nil {
		row.age = f.Age
	}
	row.lastUpdated = s.clock
	s.patients[id] = row
	return nil
}

func (s *memStore) DeletePatient(_ context.Context, ownerID int, id int64) error {
	if row, ok := s.patients[id]; ok && row.owner == ownerID {
		delete(s.patients, id)
	}
	return nil
}

func (s *memStore) CreateConsultation(_ context.Context, ownerID int, f *consultation.Fields) (int64, error) {
	id := s.newID()
	row := memConsultationRow{
		owner:       ownerID,
		symptoms:    deref(f.Symptoms),
		notes:       deref(f.Notes),
		status:      consultation.StatusPending,
		extra:       f.Extra,
		lastUpdated: s.clock,
	}
	if f.PatientID != nil {
		row.patientID = *f.PatientID
	}
	if f.Status != nil {
		row.status = *f.Status
	}
	s.consultations[id] = row
	return id, nil
}

func (s *memStore) UpdateConsultation(_ context.Context, ownerID int, id int64, f *consultation.Fields, notNewerThan time.Time) error {
	row, ok := s.consultations[id]
	if !ok || row.owner != ownerID || row.lastUpdated.After(notNewerThan) {
		return ErrUpdateConflict
	}
	if f.Notes != nil {
		row.notes = *f.Notes
	}
	if f.Status != nil {
		row.status = *f.Status
	}
	row.lastUpdated = s.clock
	s.consultations[id] = row
	return nil
}

func (s *memStore) DeleteConsultation(_ context.Context, ownerID int, id int64) error {
	if row, ok := s.consultations[id]; ok && row.owner == ownerID {
		delete(s.consultations, id)
	}
	return nil
}

func (s *memStore) CreateActivity(_ context.Context, ownerID int, f *activity.Fields) (int64, error) {
	id := s.newID()
	row := memActivityRow{
		owner:       ownerID,
		message:     deref(f.Message),
		patientID:   f.PatientID,
		lastUpdated: s.clock,
	}
	if f.Read != nil {
		row.read = *f.Read
	}
	s.activities[id] = row
	return id, nil
}

func (s *memStore) UpdateActivity(_ context.Context, ownerID int, id int64, f *activity.Fields, notNewerThan time.Time) error {
	row, ok := s.activities[id]
	if !ok || row.owner != ownerID || row.lastUpdated.After(notNewerThan) {
		return ErrUpdateConflict
	}
	if f.Message != nil {
		row.message = *f.Message
	}
	if f.Read != nil {
		row.read = *f.Read
	}
	row.lastUpdated = s.clock
	s.activities[id] = row
	return nil
}

func (s *memStore) DeleteActivity(_ context.Context, ownerID int, id int64) error {
	if row, ok := s.activities[id]; ok && row.owner == ownerID {
		delete(s.activities, id)
	}
	return nil
}

// fakeRepo mimics transaction semantics: fn runs against a copy of the
// store, committed only when fn succeeds.
type fakeRepo struct {
	store     *memStore
	rollbacks int
}

func (r *fakeRepo) InTx(ctx context.Context, fn func(ctx context.Context, store EntityStore) error) error {
	tx := r.store.clone()
	if err := fn(ctx, tx); err != nil {
		r.rollbacks++
		return err
	}
	*r.store = *tx
	return nil
}

var (
	t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(-time.Hour)
	t2 = t0.Add(-time.Minute)
)

func newTestService(store *memStore) (*Service, *fakeRepo) {
	repo := &fakeRepo{store: store}
	svc := NewService(repo, slog.Default())
	svc.now = func() time.Time { return t0 }
	return svc, repo
}

func ts(t time.Time) *time.Time { return &t }

func TestApplyBatch_OrderingResolvesTempReference(t *testing.T) {
	store := newMemStore(t0)
	svc, _ := newTestService(store)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1001", Data: map[string]any{"name": "Amara"}},
		{Model: ModelConsultation, Kind: KindCreate, TempID: "temp_1002", Data: map[string]any{
			"patientId": "temp_1001",
			"symptoms":  "fever",
		}},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "temp_1001", results[0].TempID)
	patientID := results[0].ID
	assert.NotZero(t, patientID)

	cons, ok := store.consultations[results[1].ID]
	require.True(t, ok)
	assert.Equal(t, patientID, cons.patientID)
	assert.Equal(t, "fever", cons.symptoms)
}

func TestApplyBatch_AtomicRollback(t *testing.T) {
	store := newMemStore(t0)
	svc, repo := newTestService(store)

	_, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1", Data: map[string]any{"name": "Amara"}},
		{Model: ModelPatient, Kind: KindUpdate, ID: 999, LastUpdatedAt: ts(t0), Data: map[string]any{"name": "x"}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpdateConflict)
	assert.Empty(t, store.patients, "no effect of the batch may survive")
	assert.Equal(t, 1, repo.rollbacks)
}

func TestApplyBatch_OptimisticConcurrency(t *testing.T) {
	store := newMemStore(t0)
	store.nextID = 10
	store.patients[10] = memPatientRow{owner: 1, name: "Amara", lastUpdated: t2}
	svc, _ := newTestService(store)

	t.Run("stale client timestamp is rejected", func(t *testing.T) {
		_, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
			{Model: ModelPatient, Kind: KindUpdate, ID: 10, LastUpdatedAt: ts(t1), Data: map[string]any{"name": "New"}},
		})
		assert.ErrorIs(t, err, ErrUpdateConflict)
		assert.Equal(t, "Amara", store.patients[10].name)
	})

	t.Run("timestamp equal to server copy is accepted", func(t *testing.T) {
		results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
			{Model: ModelPatient, Kind: KindUpdate, ID: 10, LastUpdatedAt: ts(t2), Data: map[string]any{"name": "New"}},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(10), results[0].ID)
		assert.Equal(t, "New", store.patients[10].name)
	})
}

func TestApplyBatch_OwnershipIsolation(t *testing.T) {
	const userA, userB = 1, 2

	store := newMemStore(t0)
	store.nextID = 10
	store.patients[10] = memPatientRow{owner: userA, name: "Amara", lastUpdated: t1}
	svc, _ := newTestService(store)

	t.Run("update of foreign record conflicts", func(t *testing.T) {
		_, err := svc.ApplyBatch(context.Background(), userB, []Mutation{
			{Model: ModelPatient, Kind: KindUpdate, ID: 10, LastUpdatedAt: ts(t0), Data: map[string]any{"name": "Hacked"}},
		})
		assert.ErrorIs(t, err, ErrUpdateConflict)
		assert.Equal(t, "Amara", store.patients[10].name)
	})

	t.Run("delete of foreign record is a silent no-op", func(t *testing.T) {
		results, err := svc.ApplyBatch(context.Background(), userB, []Mutation{
			{Model: ModelPatient, Kind: KindDelete, ID: 10},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Contains(t, store.patients, int64(10), "record of another user must survive")
	})
}

func TestApplyBatch_IdempotentDelete(t *testing.T) {
	store := newMemStore(t0)
	svc, _ := newTestService(store)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelActivity, Kind: KindDelete, ID: 404},
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(404), results[0].ID)
}

func TestApplyBatch_UnknownTempReference(t *testing.T) {
	store := newMemStore(t0)
	svc, repo := newTestService(store)

	_, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelConsultation, Kind: KindCreate, TempID: "temp_2", Data: map[string]any{
			"patientId": "temp_never_created",
		}},
	})

	assert.ErrorIs(t, err, ErrUnknownTempRef)
	assert.Empty(t, store.consultations)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestApplyBatch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		changes []Mutation
		wantErr error
	}{
		{
			name:    "empty batch",
			changes: nil,
			wantErr: ErrValidation,
		},
		{
			name: "create without tempId",
			changes: []Mutation{
				{Model: ModelPatient, Kind: KindCreate, Data: map[string]any{"name": "x"}},
			},
			wantErr: ErrValidation,
		},
		{
			name: "create with tempId lacking the marker",
			changes: []Mutation{
				{Model: ModelPatient, Kind: KindCreate, TempID: "1001", Data: map[string]any{"name": "x"}},
			},
			wantErr: ErrValidation,
		},
		{
			name: "update without lastUpdatedAt",
			changes: []Mutation{
				{Model: ModelPatient, Kind: KindUpdate, ID: 1, Data: map[string]any{"name": "x"}},
			},
			wantErr: ErrValidation,
		},
		{
			name: "unknown model",
			changes: []Mutation{
				{Model: "Visit", Kind: KindCreate, TempID: "temp_1", Data: map[string]any{}},
			},
			wantErr: ErrUnknownModel,
		},
		{
			name: "unknown kind",
			changes: []Mutation{
				{Model: ModelPatient, Kind: "merge", TempID: "temp_1", Data: map[string]any{}},
			},
			wantErr: ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore(t0)
			svc, repo := newTestService(store)

			_, err := svc.ApplyBatch(context.Background(), 1, tt.changes)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.rollbacks, "validation must reject before any persistence")
		})
	}
}

func TestApplyBatch_PreservesUnrecognizedFields(t *testing.T) {
	store := newMemStore(t0)
	svc, _ := newTestService(store)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1", Data: map[string]any{
			"name":       "Amara",
			"bloodGroup": "O+",
			"allergies":  []any{"penicillin"},
		}},
	})

	require.NoError(t, err)
	row := store.patients[results[0].ID]
	require.NotNil(t, row.extra)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(row.extra, &extra))
	assert.Equal(t, map[string]any{
		"bloodGroup": "O+",
		"allergies":  []any{"penicillin"},
	}, extra)
}

func TestApplyBatch_UpdateAndDeleteByTempID(t *testing.T) {
	store := newMemStore(t0)
	svc, _ := newTestService(store)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1", Data: map[string]any{"name": "Amara"}},
		{Model: ModelPatient, Kind: KindUpdate, TempID: "temp_1", LastUpdatedAt: ts(t1), Data: map[string]any{"village": "Kibera"}},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].ID, results[1].ID)
	assert.Equal(t, "Kibera", store.patients[results[0].ID].location)
}

func TestApplyBatch_CreateThenUpdateKeepsOfflineEditTime(t *testing.T) {
	store := newMemStore(t0)
	svc, repo := newTestService(store)

	// The patient was registered and then corrected hours before the
	// device got back online, so the update's edit time is well before
	// the server-side creation timestamp.
	edited := t0.Add(-2 * time.Hour)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1", Data: map[string]any{"name": "Halima"}},
		{Model: ModelPatient, Kind: KindUpdate, TempID: "temp_1", LastUpdatedAt: ts(edited), Data: map[string]any{"village": "Lodwar"}},
	})

	require.NoError(t, err, "a row created in the same batch is never stale")
	require.Len(t, results, 2)
	assert.Equal(t, "Lodwar", store.patients[results[0].ID].location)
	assert.Zero(t, repo.rollbacks, "resubmitting clients would wedge on a rollback here")
}

func TestApplyBatch_CreateThenDeleteByTempID(t *testing.T) {
	store := newMemStore(t0)
	svc, _ := newTestService(store)

	results, err := svc.ApplyBatch(context.Background(), 1, []Mutation{
		{Model: ModelPatient, Kind: KindCreate, TempID: "temp_1", Data: map[string]any{"name": "Halima"}},
		{Model: ModelPatient, Kind: KindDelete, TempID: "temp_1"},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotContains(t, store.patients, results[0].ID)
}
