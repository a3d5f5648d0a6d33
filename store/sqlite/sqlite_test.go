package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhr/leave-engine/leave"
	"github.com/edhr/leave-engine/store/sqlite"
)

func newTestPersistence(t *testing.T) *sqlite.Persistence {
	t.Helper()
	p, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func attachment(s string) *string { return &s }

func sampleRequests() []leave.Request {
	created := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	return []leave.Request{
		{
			ID:                  "req-2",
			RequesterID:         "u2",
			RequesterName:       "Ahmed Hassan",
			RequesterDepartment: "IT",
			Type:                leave.TypeSick,
			StartDate:           leave.NewDate(2025, time.June, 5),
			EndDate:             leave.NewDate(2025, time.June, 6),
			Duration:            decimal.NewFromInt(2),
			Reason:              "flu",
			Attachment:          attachment("cert.pdf"),
			Status:              leave.StatusPending,
			CreatedAt:           created.Add(time.Hour),
			UpdatedAt:           created.Add(time.Hour),
		},
		{
			ID:                  "req-1",
			RequesterID:         "u1",
			RequesterName:       "Mariam Ahmed",
			RequesterDepartment: "IT",
			Type:                leave.TypePersonal,
			StartDate:           leave.NewDate(2025, time.June, 10),
			EndDate:             leave.NewDate(2025, time.June, 10),
			Duration:            decimal.NewFromFloat(0.5),
			Reason:              "dentist",
			Status:              leave.StatusApproved,
			CreatedAt:           created,
			UpdatedAt:           created.Add(2 * time.Hour),
		},
	}
}

func TestPersistence_SaveLoadRoundTrip(t *testing.T) {
	// GIVEN: A saved newest-first snapshot
	// WHEN: Loading
	// THEN: Same requests in the same order, fractional duration intact

	p := newTestPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, sampleRequests()))

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, leave.RequestID("req-2"), loaded[0].ID)
	assert.Equal(t, leave.RequestID("req-1"), loaded[1].ID)

	got := loaded[1]
	assert.Equal(t, leave.TypePersonal, got.Type)
	assert.True(t, got.Duration.Equal(decimal.NewFromFloat(0.5)), "fractional duration must survive persistence")
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, "2025-06-10", got.StartDate.String())
	assert.Nil(t, got.Attachment)

	require.NotNil(t, loaded[0].Attachment)
	assert.Equal(t, "cert.pdf", *loaded[0].Attachment)
	assert.True(t, loaded[1].UpdatedAt.After(loaded[1].CreatedAt))
}

func TestPersistence_SaveReplacesSnapshot(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, sampleRequests()))
	require.NoError(t, p.Save(ctx, sampleRequests()[:1]))

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, leave.RequestID("req-2"), loaded[0].ID)
}

func TestPersistence_EmptyDatabaseLoadsNothing(t *testing.T) {
	p := newTestPersistence(t)

	loaded, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestPersistence_BacksRequestStore(t *testing.T) {
	// The real collaborator behind the store: mutations survive a reload.
	p := newTestPersistence(t)
	ctx := context.Background()

	store := leave.NewStore(p)
	require.NoError(t, store.Load(ctx))

	req, err := store.Submit(ctx, leave.Draft{
		Type:      leave.TypeEmergency,
		StartDate: leave.Today(),
		EndDate:   leave.Today(),
		Reason:    "pipe burst",
	}, leave.User{ID: "u1", Name: "Mariam Ahmed", Department: "IT"})
	require.NoError(t, err)

	_, err = store.Approve(ctx, req.ID)
	require.NoError(t, err)

	// Fresh store over the same database sees the approved request.
	reloaded := leave.NewStore(p)
	require.NoError(t, reloaded.Load(ctx))

	got, err := reloaded.Get(req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
}
