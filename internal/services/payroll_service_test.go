package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

func newPayrollFixture(t *testing.T) (*PayrollService, *EventService, models.Server) {
	t.Helper()
	db := newTestDB(t)
	activity := NewActivityService(db)
	servers := NewServerService(db, nil, activity)
	events := NewEventService(db, activity)
	payrolls := NewPayrollService(servers, events)

	srv, err := servers.CreateServer(models.Server{Name: "Huda"})
	require.NoError(t, err)
	return payrolls, events, srv
}

func seedEntry(t *testing.T, events *EventService, srv models.Server, name string, date time.Time, due, paid float64) {
	t.Helper()
	event, err := events.CreateEvent(models.Event{Name: name, Type: models.EventBirthday, Date: date})
	require.NoError(t, err)
	_, err = events.AssignServer(event.ID, srv.ID, due)
	require.NoError(t, err)
	if paid > 0 {
		_, err = events.MarkServerPaid(event.ID, srv.ID, &paid, models.MethodCash, "")
		require.NoError(t, err)
	}
}

func TestGetSummary(t *testing.T) {
	payrolls, events, srv := newPayrollFixture(t)

	may := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(t, events, srv, "Garden Party", may, 100, 40)
	seedEntry(t, events, srv, "Rooftop Dinner", may.AddDate(0, 0, 5), 50, 50)

	summary, err := payrolls.GetSummary(srv.ID, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEvents)
	assert.Equal(t, 150.0, summary.TotalEarnings)
	assert.Equal(t, 90.0, summary.TotalPaid)
	assert.Equal(t, 60.0, summary.TotalPending)
}

func TestGetSummaryRespectsDateRange(t *testing.T) {
	payrolls, events, srv := newPayrollFixture(t)

	seedEntry(t, events, srv, "January Gala", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 100, 100)
	seedEntry(t, events, srv, "June Wedding", time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), 200, 0)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	summary, err := payrolls.GetSummary(srv.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalEvents)
	assert.Equal(t, 200.0, summary.TotalEarnings)
	assert.Equal(t, 200.0, summary.TotalPending)
}

func TestGetSummaryEmptyPeriod(t *testing.T) {
	payrolls, _, srv := newPayrollFixture(t)

	summary, err := payrolls.GetSummary(srv.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, models.PayrollSummary{}, summary)
}

func TestGetSummaryUnknownServer(t *testing.T) {
	payrolls, _, _ := newPayrollFixture(t)

	_, err := payrolls.GetSummary("missing", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGetPayslip(t *testing.T) {
	payrolls, events, srv := newPayrollFixture(t)

	may := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(t, events, srv, "Garden Party", may, 100, 40)

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	data, err := payrolls.GetPayslip(srv.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, srv.ID, data.Server.ID)
	assert.Equal(t, start, data.PeriodStart)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, 60.0, data.Summary.TotalPending)
}

func TestRenderPayslip(t *testing.T) {
	payrolls, events, srv := newPayrollFixture(t)
	seedEntry(t, events, srv, "Garden Party", time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), 100, 40)

	var buf bytes.Buffer
	require.NoError(t, payrolls.RenderPayslip(&buf, srv.ID, time.Time{}, time.Time{}))
	assert.Contains(t, buf.String(), "Huda")
	assert.Contains(t, buf.String(), "Garden Party")
}
