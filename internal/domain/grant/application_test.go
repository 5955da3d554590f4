package grant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upg/backend/internal/domain/shared/valueobject"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	a, err := NewApplication(
		HouseholdApplicant(uuid.New()),
		uuid.New(),
		AppTypeLivelihood,
		valueobject.NewMoneyKESFromInt(20000),
		"Dairy goat purchase",
		"Buy two dairy goats to supply milk to the local school",
	)
	require.NoError(t, err)
	return a
}

func TestNewApplication(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := newTestApplication(t)
		assert.Equal(t, AppStatusDraft, a.Status)
		assert.Equal(t, "20000.00 KES", a.EffectiveAmount().String())
	})

	t.Run("invalid grant type", func(t *testing.T) {
		_, err := NewApplication(HouseholdApplicant(uuid.New()), uuid.New(),
			ApplicationGrantType("scholarship"), valueobject.NewMoneyKESFromInt(1000), "t", "p")
		assert.Error(t, err)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewApplication(HouseholdApplicant(uuid.New()), uuid.New(),
			AppTypeEmergency, valueobject.ZeroKES(), "t", "p")
		assert.Error(t, err)
	})

	t.Run("missing purpose", func(t *testing.T) {
		_, err := NewApplication(HouseholdApplicant(uuid.New()), uuid.New(),
			AppTypeEmergency, valueobject.NewMoneyKESFromInt(1000), "t", "  ")
		assert.Error(t, err)
	})
}

func TestApplicationWorkflow(t *testing.T) {
	reviewer := uuid.New()
	approver := uuid.New()
	cashier := uuid.New()

	t.Run("submit review approve disburse", func(t *testing.T) {
		a := newTestApplication(t)
		require.NoError(t, a.Submit())
		assert.True(t, a.IsPendingReview())
		assert.NotNil(t, a.SubmissionDate)
		assert.Error(t, a.Submit())

		require.NoError(t, a.Review(reviewer, 78, "solid plan, confirm supplier quote"))
		assert.Equal(t, AppStatusUnderReview, a.Status)

		approved := valueobject.NewMoneyKESFromInt(18000)
		require.NoError(t, a.Approve(approver, &approved, "reduced to quoted price"))
		assert.True(t, a.IsApproved())
		assert.Equal(t, "18000.00 KES", a.EffectiveAmount().String())

		require.NoError(t, a.Disburse(valueobject.NewMoneyKESFromInt(18000),
			MethodMobileMoney, "MPESA-QX12345", cashier))
		assert.Equal(t, AppStatusDisbursed, a.Status)
		assert.True(t, a.RemainingAmount().IsZero())
	})

	t.Run("partial disbursement keeps application open", func(t *testing.T) {
		a := newTestApplication(t)
		require.NoError(t, a.Submit())
		require.NoError(t, a.Approve(approver, nil, ""))

		require.NoError(t, a.Disburse(valueobject.NewMoneyKESFromInt(12000),
			MethodBankTransfer, "TRX-1", cashier))
		assert.Equal(t, AppStatusApproved, a.Status)
		assert.Equal(t, "8000.00 KES", a.RemainingAmount().String())

		err := a.Disburse(valueobject.NewMoneyKESFromInt(10000), MethodCash, "", cashier)
		assert.Error(t, err)
	})

	t.Run("review score bounds", func(t *testing.T) {
		a := newTestApplication(t)
		require.NoError(t, a.Submit())
		assert.Error(t, a.Review(reviewer, 101, ""))
		assert.Error(t, a.Review(reviewer, -1, ""))
	})

	t.Run("reject", func(t *testing.T) {
		a := newTestApplication(t)
		require.NoError(t, a.Submit())
		require.NoError(t, a.Reject(reviewer, "duplicate of an earlier award"))
		assert.Equal(t, AppStatusRejected, a.Status)
		assert.Error(t, a.Approve(approver, nil, ""))
	})

	t.Run("cancel blocked after disbursement", func(t *testing.T) {
		a := newTestApplication(t)
		require.NoError(t, a.Submit())
		require.NoError(t, a.Approve(approver, nil, ""))
		require.NoError(t, a.Disburse(valueobject.NewMoneyKESFromInt(20000),
			MethodCheck, "CHQ-9", cashier))
		assert.Error(t, a.Cancel())
	})
}

func TestApplicationDocumentsAndUtilization(t *testing.T) {
	a := newTestApplication(t)
	require.NoError(t, a.AttachDocument("uploads/quotes/goat-supplier.pdf"))
	assert.Error(t, a.AttachDocument(" "))
	assert.Len(t, a.SupportingDocs, 1)

	a.SetBudgetBreakdown(map[string]interface{}{"goats": 16000, "transport": 2000, "feed": 2000})
	a.SetNarrative("", "Milk income of 4000 KES per month")

	assert.Error(t, a.RecordUtilization("", ""))
	require.NoError(t, a.RecordUtilization("Two goats purchased from Molo supplier", "Supplying 5L daily"))
	assert.NotNil(t, a.UtilizationDate)
}

func TestDisbursementRecord(t *testing.T) {
	processor := uuid.New()

	t.Run("sb disbursement", func(t *testing.T) {
		d, err := NewSBDisbursement(uuid.New(), valueobject.NewMoneyKESFromInt(7500),
			testDay(), MethodMobileMoney, "Mary Wanjiku", processor)
		require.NoError(t, err)
		assert.Equal(t, GrantKindSB, d.Kind)
		d.SetReference("MPESA-AB321")
		assert.Equal(t, "MPESA-AB321", d.ReferenceNumber)
	})

	t.Run("missing recipient rejected", func(t *testing.T) {
		_, err := NewPRDisbursement(uuid.New(), valueobject.NewMoneyKESFromInt(7500),
			testDay(), MethodCash, "  ", processor)
		assert.Error(t, err)
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		_, err := NewSBDisbursement(uuid.New(), valueobject.NewMoneyKESFromInt(7500),
			testDay(), DisbursementMethod("crypto"), "Mary", processor)
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewSBDisbursement(uuid.New(), valueobject.ZeroKES(),
			testDay(), MethodCash, "Mary", processor)
		assert.Error(t, err)
	})
}
