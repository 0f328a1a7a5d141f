package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazemadel/staffdeck-be/internal/models"
)

func TestSummarizeEmptySet(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalEvents)
	assert.Equal(t, 0.0, summary.TotalEarnings)
	assert.Equal(t, 0.0, summary.TotalPaid)
	assert.Equal(t, 0.0, summary.TotalPending)
}

func TestSummarize(t *testing.T) {
	entries := []models.EventPayEntry{
		{AmountDue: 100, AmountPaid: 40},
		{AmountDue: 50, AmountPaid: 50},
	}

	summary := Summarize(entries)

	assert.Equal(t, 2, summary.TotalEvents)
	assert.Equal(t, 150.0, summary.TotalEarnings)
	assert.Equal(t, 90.0, summary.TotalPaid)
	assert.Equal(t, 60.0, summary.TotalPending)
}

func TestProgressPercentGuardsZeroDue(t *testing.T) {
	assert.Equal(t, 0.0, ProgressPercent(0, 0))
	assert.Equal(t, 0.0, ProgressPercent(50, 0))
	assert.Equal(t, 40.0, ProgressPercent(40, 100))
	assert.Equal(t, 100.0, ProgressPercent(150, 150))
}

func TestFilterByPeriod(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	entries := []models.EventPayEntry{
		{EventID: "e1", EventDate: jan},
		{EventID: "e2", EventDate: feb},
		{EventID: "e3", EventDate: mar},
	}

	t.Run("bounded range", func(t *testing.T) {
		filtered := FilterByPeriod(entries, feb.AddDate(0, 0, -1), feb.AddDate(0, 0, 1))
		require.Len(t, filtered, 1)
		assert.Equal(t, "e2", filtered[0].EventID)
	})

	t.Run("open start", func(t *testing.T) {
		filtered := FilterByPeriod(entries, time.Time{}, feb)
		assert.Len(t, filtered, 2)
	})

	t.Run("open end", func(t *testing.T) {
		filtered := FilterByPeriod(entries, feb, time.Time{})
		assert.Len(t, filtered, 2)
	})

	t.Run("unbounded", func(t *testing.T) {
		filtered := FilterByPeriod(entries, time.Time{}, time.Time{})
		assert.Len(t, filtered, 3)
	})

	t.Run("boundary dates are inclusive", func(t *testing.T) {
		filtered := FilterByPeriod(entries, jan, mar)
		assert.Len(t, filtered, 3)
	})
}

func TestBuildPayslip(t *testing.T) {
	srv := models.Server{ID: "srv1", Name: "Huda"}
	eventDate := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	entries := []models.EventPayEntry{
		{EventID: "e1", EventName: "Spring Wedding", EventDate: eventDate, AmountDue: 120, AmountPaid: 120, IsPaid: true},
		{EventID: "e2", EventName: "June Birthday", EventDate: eventDate.AddDate(0, 2, 0), AmountDue: 80},
	}

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	data := BuildPayslip(srv, start, end, entries)

	assert.Equal(t, srv.ID, data.Server.ID)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "e1", data.Entries[0].EventID)
	assert.Equal(t, 1, data.Summary.TotalEvents)
	assert.Equal(t, 120.0, data.Summary.TotalEarnings)
	assert.Equal(t, 0.0, data.Summary.TotalPending)
}

func TestRenderPayslipHTML(t *testing.T) {
	data := BuildPayslip(models.Server{Name: "Huda"}, time.Time{}, time.Time{}, []models.EventPayEntry{
		{EventName: "Garden Party", EventDate: time.Now(), AmountDue: 100, AmountPaid: 40},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderPayslipHTML(&buf, data))

	html := buf.String()
	assert.Contains(t, html, "Huda")
	assert.Contains(t, html, "Garden Party")
	assert.Contains(t, html, "100.00")
	assert.Contains(t, html, "60.00") // pending
}

func TestRenderPayslipHTMLZeroDueDoesNotDivide(t *testing.T) {
	data := BuildPayslip(models.Server{Name: "Huda"}, time.Time{}, time.Time{}, nil)

	var buf bytes.Buffer
	require.NoError(t, RenderPayslipHTML(&buf, data))
	assert.Contains(t, buf.String(), "0%")
	assert.NotContains(t, buf.String(), "NaN")
}
