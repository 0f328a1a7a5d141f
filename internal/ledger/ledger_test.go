package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazemadel/staffdeck-be/internal/models"
)

func TestApplyPaymentReducesBalance(t *testing.T) {
	srv := models.Server{ID: "srv1", Name: "Omar", TotalEarnings: 500}
	now := time.Now()

	updated, record, err := ApplyPayment(srv, 200, models.MethodTransfer, "first installment", now)

	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.TotalEarnings)
	assert.Equal(t, 300.0, record.Remaining)
	assert.Equal(t, 200.0, record.Amount)
	assert.Equal(t, models.MethodTransfer, record.Method)
	assert.Equal(t, "first installment", record.Note)
	assert.Equal(t, now, record.CreatedAt)
	assert.Len(t, updated.Payments, 1)

	// The input value must stay untouched.
	assert.Equal(t, 500.0, srv.TotalEarnings)
	assert.Empty(t, srv.Payments)
}

func TestApplyPaymentDefaultsToCash(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 100}

	_, record, err := ApplyPayment(srv, 50, "", "", time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.MethodCash, record.Method)
}

func TestApplyPaymentOverpaymentClampsAtZero(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 100}

	updated, record, err := ApplyPayment(srv, 150, models.MethodCash, "", time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.TotalEarnings)
	assert.Equal(t, 0.0, record.Remaining)
}

func TestApplyPaymentRejectsInvalidAmounts(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 100}

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		updated, _, err := ApplyPayment(srv, amount, models.MethodCash, "", time.Now())
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, 100.0, updated.TotalEarnings)
		assert.Empty(t, updated.Payments)
	}
}

func TestApplyPaymentRejectsUnknownMethod(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 100}

	_, _, err := ApplyPayment(srv, 50, "barter", "", time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTotalPaidEmptyHistory(t *testing.T) {
	assert.Equal(t, 0.0, TotalPaid(nil))
	assert.Equal(t, 0.0, TotalPaid([]models.PaymentRecord{}))
}

func TestOriginalEarningsWithEmptyHistoryEqualsBalance(t *testing.T) {
	srv := models.Server{TotalEarnings: 320}
	assert.Equal(t, 320.0, OriginalEarnings(srv))
}

func TestOriginalEarningsInvariantAcrossPayments(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 1000}
	original := OriginalEarnings(srv)

	prev := srv.TotalEarnings
	for _, amount := range []float64{100, 250.5, 99.5, 700} {
		var err error
		srv, _, err = ApplyPayment(srv, amount, models.MethodCash, "", time.Now())
		require.NoError(t, err)

		expected := prev - amount
		if expected < 0 {
			expected = 0
		}
		assert.Equal(t, expected, srv.TotalEarnings)
		prev = srv.TotalEarnings
	}

	// Reconstruction holds for the whole sequence until the clamp fires;
	// the last payment overshoots, so the original can only grow.
	assert.GreaterOrEqual(t, OriginalEarnings(srv), original)
}

func TestOriginalEarningsReconstructsExactly(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 600}

	for _, amount := range []float64{150, 150, 100} {
		var err error
		srv, _, err = ApplyPayment(srv, amount, models.MethodCheck, "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 600.0, OriginalEarnings(srv))
	}
	assert.Equal(t, 200.0, srv.TotalEarnings)
}

func TestPureReadersAreIdempotent(t *testing.T) {
	srv := models.Server{ID: "srv1", TotalEarnings: 400}
	srv, _, err := ApplyPayment(srv, 120, models.MethodCash, "", time.Now())
	require.NoError(t, err)

	first := TotalPaid(srv.Payments)
	second := TotalPaid(srv.Payments)
	assert.Equal(t, first, second)

	assert.Equal(t, OriginalEarnings(srv), OriginalEarnings(srv))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "100.00", FormatCurrency(100))
	assert.Equal(t, "99.50", FormatCurrency(99.5))
	assert.Equal(t, "0.00", FormatCurrency(0))
	assert.Equal(t, "1234.57", FormatCurrency(1234.567))
}
