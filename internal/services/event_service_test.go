package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

func newEventFixture(t *testing.T) (*EventService, *ServerService, models.Event, models.Server) {
	t.Helper()
	db := newTestDB(t)
	activity := NewActivityService(db)
	events := NewEventService(db, activity)
	servers := NewServerService(db, nil, activity)

	srv, err := servers.CreateServer(models.Server{Name: "Laila", PricePerEvent: 120})
	require.NoError(t, err)

	event, err := events.CreateEvent(models.Event{
		Name: "Nile View Wedding",
		Type: models.EventWedding,
		Date: time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return events, servers, event, srv
}

func TestCreateEventRequiresName(t *testing.T) {
	events, _, _, _ := newEventFixture(t)

	_, err := events.CreateEvent(models.Event{Type: models.EventBirthday})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestCreateEventDefaultsTypeToOther(t *testing.T) {
	events, _, _, _ := newEventFixture(t)

	created, err := events.CreateEvent(models.Event{Name: "Office Party"})
	require.NoError(t, err)
	assert.Equal(t, models.EventOther, created.Type)
}

func TestAssignServer(t *testing.T) {
	events, _, event, srv := newEventFixture(t)

	entry, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, entry.AmountDue)
	assert.Equal(t, 0.0, entry.AmountPaid)
	assert.False(t, entry.IsPaid)
	assert.Equal(t, "Laila", entry.ServerName)

	fetched, err := events.GetEventByID(event.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Servers, 1)
}

func TestAssignServerDefaultsToStoredRate(t *testing.T) {
	events, _, event, srv := newEventFixture(t)

	entry, err := events.AssignServer(event.ID, srv.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 120.0, entry.AmountDue)
}

func TestAssignServerUnknownIDs(t *testing.T) {
	events, _, event, srv := newEventFixture(t)

	_, err := events.AssignServer("missing", srv.ID, 100)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = events.AssignServer(event.ID, "missing", 100)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestMarkServerPaidDefaultsToFullAmountDue(t *testing.T) {
	events, _, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	entry, err := events.MarkServerPaid(event.ID, srv.ID, nil, "", "")
	require.NoError(t, err)

	assert.Equal(t, 150.0, entry.AmountPaid)
	assert.True(t, entry.IsPaid)
	assert.Equal(t, string(models.MethodCash), entry.PaymentMethod)
	require.NotNil(t, entry.PaymentDate)
}

func TestMarkServerPaidPartialAmount(t *testing.T) {
	events, _, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	paid := 60.0
	entry, err := events.MarkServerPaid(event.ID, srv.ID, &paid, models.MethodTransfer, "advance")
	require.NoError(t, err)

	assert.Equal(t, 60.0, entry.AmountPaid)
	assert.False(t, entry.IsPaid)
	assert.Equal(t, "advance", entry.Notes)
}

func TestMarkServerPaidOverTheDueAmountFlagsPaid(t *testing.T) {
	events, _, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	// No clamping on the per-event view; the flag is a plain threshold.
	paid := 200.0
	entry, err := events.MarkServerPaid(event.ID, srv.ID, &paid, "", "")
	require.NoError(t, err)
	assert.Equal(t, 200.0, entry.AmountPaid)
	assert.True(t, entry.IsPaid)
}

func TestMarkServerPaidInvalidAmount(t *testing.T) {
	events, _, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	bad := -10.0
	_, err = events.MarkServerPaid(event.ID, srv.ID, &bad, "", "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestMarkServerPaidUnknownAssignment(t *testing.T) {
	events, _, event, _ := newEventFixture(t)

	_, err := events.MarkServerPaid(event.ID, "missing", nil, "", "")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestMarkServerPaidDoesNotTouchGlobalLedger(t *testing.T) {
	events, servers, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	_, err = events.MarkServerPaid(event.ID, srv.ID, nil, "", "")
	require.NoError(t, err)

	// The per-event view and the server-wide ledger are separate books.
	fetched, err := servers.GetServerByID(srv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fetched.TotalEarnings)
	assert.Empty(t, fetched.Payments)
}

func TestCompleteEventCreditsAssignedServers(t *testing.T) {
	events, servers, event, srv := newEventFixture(t)
	second, err := servers.CreateServer(models.Server{Name: "Nour"})
	require.NoError(t, err)

	_, err = events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)
	_, err = events.AssignServer(event.ID, second.ID, 90)
	require.NoError(t, err)

	completed, err := events.CompleteEvent(event.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	first, err := servers.GetServerByID(srv.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, first.TotalEarnings)
	assert.Equal(t, 1, first.TotalEvents)

	other, err := servers.GetServerByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, other.TotalEarnings)

	// Completing twice would double-credit; it must be refused.
	_, err = events.CompleteEvent(event.ID)
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestUnassignServer(t *testing.T) {
	events, _, event, srv := newEventFixture(t)
	_, err := events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)

	require.NoError(t, events.UnassignServer(event.ID, srv.ID))
	assert.ErrorIs(t, events.UnassignServer(event.ID, srv.ID), ledger.ErrNotFound)
}

func TestEntriesForServerOrderedByEventDate(t *testing.T) {
	events, _, event, srv := newEventFixture(t)

	earlier, err := events.CreateEvent(models.Event{
		Name: "Spring Engagement",
		Type: models.EventEngagement,
		Date: time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = events.AssignServer(event.ID, srv.ID, 150)
	require.NoError(t, err)
	_, err = events.AssignServer(earlier.ID, srv.ID, 100)
	require.NoError(t, err)

	entries, err := events.EntriesForServer(srv.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Spring Engagement", entries[0].EventName)
	assert.Equal(t, "Nile View Wedding", entries[1].EventName)
}
