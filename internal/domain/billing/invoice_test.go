package billing

import (
	"testing"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-2026-001", uuid.New(), "Jane Doe", nil, uuid.New())
	require.NoError(t, err)
	return inv
}

func createSentInvoice(t *testing.T, amounts ...float64) *Invoice {
	t.Helper()
	inv := createTestInvoice(t)
	for _, a := range amounts {
		_, err := inv.AddItem("Consultation", 1, valueobject.NewMoneyUSDFromFloat(a), nil)
		require.NoError(t, err)
	}
	require.NoError(t, inv.Send())
	return inv
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusSent, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusCancelled, true},
		{InvoiceStatus("INVALID"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     InvoiceStatus
		isTerminal bool
	}{
		{InvoiceStatusDraft, false},
		{InvoiceStatusSent, false},
		{InvoiceStatusOverdue, false},
		{InvoiceStatusPaid, true},
		{InvoiceStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled,
	}

	allowed := map[InvoiceStatus][]InvoiceStatus{
		InvoiceStatusDraft:     {InvoiceStatusSent, InvoiceStatusCancelled},
		InvoiceStatusSent:      {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
		InvoiceStatusOverdue:   {InvoiceStatusPaid, InvoiceStatusCancelled},
		InvoiceStatusPaid:      {},
		InvoiceStatusCancelled: {},
	}

	for from, targets := range allowed {
		permitted := make(map[InvoiceStatus]bool)
		for _, target := range targets {
			permitted[target] = true
		}
		for _, to := range allStatuses {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				assert.Equal(t, permitted[to], from.CanTransitionTo(to))
			})
		}
	}
}

// ============================================
// Line Item Calculation Tests
// ============================================

func TestNewInvoiceItem_Validation(t *testing.T) {
	invoiceID := uuid.New()
	price := valueobject.NewMoneyUSDFromFloat(10.00)
	negativeTax := decimal.NewFromInt(-1)
	excessiveTax := decimal.NewFromInt(101)

	tests := []struct {
		name        string
		description string
		quantity    int64
		unitPrice   valueobject.Money
		taxRate     *decimal.Decimal
		wantCode    string
	}{
		{"empty description", "", 1, price, nil, "INVALID_DESCRIPTION"},
		{"zero quantity", "X-Ray", 0, price, nil, "INVALID_QUANTITY"},
		{"negative quantity", "X-Ray", -2, price, nil, "INVALID_QUANTITY"},
		{"negative price", "X-Ray", 1, valueobject.NewMoneyUSDFromFloat(-5), nil, "INVALID_PRICE"},
		{"negative tax rate", "X-Ray", 1, price, &negativeTax, "INVALID_TAX_RATE"},
		{"tax rate above 100", "X-Ray", 1, price, &excessiveTax, "INVALID_TAX_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoiceItem(invoiceID, tt.description, tt.quantity, tt.unitPrice, tt.taxRate)
			assertDomainErrorCode(t, err, tt.wantCode)
		})
	}
}

func TestInvoiceItem_AmountDerivation(t *testing.T) {
	taxRate := decimal.NewFromInt(10)

	item, err := NewInvoiceItem(uuid.New(), "Blood panel", 3, valueobject.NewMoneyUSDFromFloat(25.50), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(76.50).Equal(item.Amount), "amount = 3 * 25.50")

	taxed, err := NewInvoiceItem(uuid.New(), "Blood panel", 2, valueobject.NewMoneyUSDFromFloat(100), &taxRate)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(220).Equal(taxed.Amount), "amount = 2 * 100 * 1.10")
}

func TestInvoiceItem_UpdateRecalculatesAmount(t *testing.T) {
	item, err := NewInvoiceItem(uuid.New(), "Physio session", 2, valueobject.NewMoneyUSDFromFloat(40), nil)
	require.NoError(t, err)

	require.NoError(t, item.UpdateQuantity(5))
	assert.True(t, decimal.NewFromInt(200).Equal(item.Amount))

	require.NoError(t, item.UpdateUnitPrice(valueobject.NewMoneyUSDFromFloat(50)))
	assert.True(t, decimal.NewFromInt(250).Equal(item.Amount))

	taxRate := decimal.NewFromInt(20)
	require.NoError(t, item.UpdateTaxRate(&taxRate))
	assert.True(t, decimal.NewFromInt(300).Equal(item.Amount))

	require.NoError(t, item.UpdateTaxRate(nil))
	assert.True(t, decimal.NewFromInt(250).Equal(item.Amount))
}

func TestInvoice_TotalsRecomputedOnEveryItemEdit(t *testing.T) {
	inv := createTestInvoice(t)

	item1, err := inv.AddItem("Consultation", 2, valueobject.NewMoneyUSDFromFloat(150), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(inv.TotalAmount))

	_, err = inv.AddItem("MRI scan", 1, valueobject.NewMoneyUSDFromFloat(300), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(inv.TotalAmount))
	assert.True(t, decimal.NewFromInt(600).Equal(inv.Balance))

	one := int64(1)
	require.NoError(t, inv.UpdateItem(item1.ID, ItemUpdate{Quantity: &one}))
	assert.True(t, decimal.NewFromInt(450).Equal(inv.TotalAmount))

	require.NoError(t, inv.RemoveItem(item1.ID))
	assert.True(t, decimal.NewFromInt(300).Equal(inv.TotalAmount))
	assert.True(t, decimal.NewFromInt(300).Equal(inv.Balance))
}

func TestInvoice_TotalRoundedToMinorUnit(t *testing.T) {
	inv := createTestInvoice(t)
	taxRate := decimal.NewFromInt(7)

	// 3 * 33.33 * 1.07 = 106.99923 -> total rounds half-up to 107.00
	_, err := inv.AddItem("Supplies", 3, valueobject.NewMoneyUSDFromFloat(33.33), &taxRate)
	require.NoError(t, err)

	assert.Equal(t, "107.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "107.00", inv.Balance.StringFixed(2))
}

// ============================================
// Editability Tests
// ============================================

func TestInvoice_ItemEditsOnlyInDraft(t *testing.T) {
	inv := createSentInvoice(t, 100)
	itemID := inv.Items[0].ID

	_, err := inv.AddItem("Extra", 1, valueobject.NewMoneyUSDFromFloat(10), nil)
	assertDomainErrorCode(t, err, "INVOICE_NOT_EDITABLE")

	qty := int64(2)
	price := valueobject.NewMoneyUSDFromFloat(1)
	assertDomainErrorCode(t, inv.UpdateItem(itemID, ItemUpdate{Quantity: &qty}), "INVOICE_NOT_EDITABLE")
	assertDomainErrorCode(t, inv.UpdateItem(itemID, ItemUpdate{UnitPrice: &price}), "INVOICE_NOT_EDITABLE")
	assertDomainErrorCode(t, inv.RemoveItem(itemID), "INVOICE_NOT_EDITABLE")

	// State unchanged
	assert.Equal(t, 1, inv.ItemCount())
	assert.True(t, decimal.NewFromInt(100).Equal(inv.TotalAmount))
}

// Each edit bumps the version exactly once, however many fields it touches.
// SaveWithLock compares against the pre-bump version, so any other step
// count would turn a clean save into a conflict.
func TestInvoice_OneVersionStepPerEdit(t *testing.T) {
	inv := createTestInvoice(t)

	before := inv.Version
	item, err := inv.AddItem("Consultation", 2, valueobject.NewMoneyUSDFromFloat(150), nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, inv.Version)

	before = inv.Version
	qty := int64(3)
	price := valueobject.NewMoneyUSDFromFloat(120)
	desc := "Extended consultation"
	require.NoError(t, inv.UpdateItem(item.ID, ItemUpdate{Description: &desc, Quantity: &qty, UnitPrice: &price}))
	assert.Equal(t, before+1, inv.Version)

	before = inv.Version
	due := time.Now().Add(30 * 24 * time.Hour)
	remark := "net 30"
	require.NoError(t, inv.UpdateDetails(&due, &remark))
	assert.Equal(t, before+1, inv.Version)

	before = inv.Version
	require.NoError(t, inv.RemoveItem(item.ID))
	assert.Equal(t, before+1, inv.Version)
}

// ============================================
// Payment Ledger Tests
// ============================================

func TestInvoice_ApplyPayment_FullScenario(t *testing.T) {
	// items [{qty:2, price:150}, {qty:1, price:300}] -> total 600.00
	inv := createTestInvoice(t)
	_, err := inv.AddItem("Consultation", 2, valueobject.NewMoneyUSDFromFloat(150), nil)
	require.NoError(t, err)
	_, err = inv.AddItem("MRI scan", 1, valueobject.NewMoneyUSDFromFloat(300), nil)
	require.NoError(t, err)

	assert.Equal(t, "600.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "600.00", inv.Balance.StringFixed(2))

	require.NoError(t, inv.Send())

	actor := uuid.New()
	record, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(600), PaymentMethodCash, "", actor)
	require.NoError(t, err)

	assert.Equal(t, "600.00", inv.AmountPaid.StringFixed(2))
	assert.Equal(t, "0.00", inv.Balance.StringFixed(2))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, record.RecordedAt, *inv.PaidAt)
	assert.Equal(t, actor, record.RecordedBy)
	assert.Equal(t, 1, inv.PaymentCount())
}

func TestInvoice_ApplyPayment_PartialKeepsInvariant(t *testing.T) {
	inv := createSentInvoice(t, 250, 250)
	actor := uuid.New()

	payments := []float64{100, 150.50, 99.50, 150}
	for _, p := range payments {
		_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(p), PaymentMethodCredit, "", actor)
		require.NoError(t, err)
		// paid + balance == total after every application
		assert.True(t, inv.AmountPaid.Add(inv.Balance).Equal(inv.TotalAmount),
			"invariant violated after payment of %v", p)
	}

	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.Equal(t, len(payments), inv.PaymentCount())
}

func TestInvoice_ApplyPayment_ExceedsBalance(t *testing.T) {
	// balance 600.00, payment of 700.00 -> rejected, state unchanged
	inv := createSentInvoice(t, 600)
	versionBefore := inv.Version

	_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(700), PaymentMethodCash, "", uuid.New())
	assertDomainErrorCode(t, err, "INVALID_PAYMENT_AMOUNT")

	assert.Equal(t, "0.00", inv.AmountPaid.StringFixed(2))
	assert.Equal(t, "600.00", inv.Balance.StringFixed(2))
	assert.Equal(t, InvoiceStatusSent, inv.Status)
	assert.Equal(t, versionBefore, inv.Version)
	assert.Equal(t, 0, inv.PaymentCount())
}

func TestInvoice_ApplyPayment_Validation(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		method   PaymentMethod
		actor    uuid.UUID
		wantCode string
	}{
		{"zero amount", 0, PaymentMethodCash, uuid.New(), "INVALID_PAYMENT_AMOUNT"},
		{"negative amount", -50, PaymentMethodCash, uuid.New(), "INVALID_PAYMENT_AMOUNT"},
		{"invalid method", 50, PaymentMethod("BARTER"), uuid.New(), "INVALID_PAYMENT_METHOD"},
		{"missing actor", 50, PaymentMethodCheck, uuid.Nil, "INVALID_ACTOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := createSentInvoice(t, 100)
			_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(tt.amount), tt.method, "", tt.actor)
			assertDomainErrorCode(t, err, tt.wantCode)
		})
	}
}

func TestInvoice_ApplyPayment_NotAllowedInDraft(t *testing.T) {
	inv := createTestInvoice(t)
	_, err := inv.AddItem("Consultation", 1, valueobject.NewMoneyUSDFromFloat(100), nil)
	require.NoError(t, err)

	_, err = inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", uuid.New())
	assertDomainErrorCode(t, err, "INVALID_STATE")
}

func TestInvoice_ApplyPayment_OnOverdueInvoice(t *testing.T) {
	inv := createSentInvoice(t, 100)
	due := time.Now().Add(-24 * time.Hour)
	inv.DueDate = &due
	require.NoError(t, inv.MarkOverdue(time.Now()))

	_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodInsurance, "CLAIM-42", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestInvoice_PaymentLedgerIsAppendOnly(t *testing.T) {
	inv := createSentInvoice(t, 300)
	actor := uuid.New()

	first, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", actor)
	require.NoError(t, err)
	_, err = inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(200), PaymentMethodCheck, "CHK-9", actor)
	require.NoError(t, err)

	require.Len(t, inv.PaymentRecords, 2)
	assert.Equal(t, first.ID, inv.PaymentRecords[0].ID)
	assert.True(t, decimal.NewFromInt(100).Equal(inv.PaymentRecords[0].Amount))
	assert.Equal(t, PaymentMethodCheck, inv.PaymentRecords[1].Method)
	assert.Equal(t, "CHK-9", inv.PaymentRecords[1].Reference)
}

// ============================================
// Status Transition Tests
// ============================================

func TestInvoice_Send(t *testing.T) {
	inv := createTestInvoice(t)

	// Guard: item list must be non-empty
	assertDomainErrorCode(t, inv.Send(), "NO_ITEMS")

	_, err := inv.AddItem("Consultation", 1, valueobject.NewMoneyUSDFromFloat(80), nil)
	require.NoError(t, err)

	require.NoError(t, inv.Send())
	assert.Equal(t, InvoiceStatusSent, inv.Status)
	assert.NotNil(t, inv.SentAt)

	// Re-sending is illegal
	assertDomainErrorCode(t, inv.Send(), "ILLEGAL_STATUS_TRANSITION")
}

func TestInvoice_MarkOverdue(t *testing.T) {
	t.Run("past due with balance", func(t *testing.T) {
		inv := createSentInvoice(t, 200)
		due := time.Now().Add(-48 * time.Hour)
		inv.DueDate = &due

		require.NoError(t, inv.MarkOverdue(time.Now()))
		assert.Equal(t, InvoiceStatusOverdue, inv.Status)
		assert.NotNil(t, inv.OverdueAt)
	})

	t.Run("due date not passed", func(t *testing.T) {
		inv := createSentInvoice(t, 200)
		due := time.Now().Add(48 * time.Hour)
		inv.DueDate = &due

		assertDomainErrorCode(t, inv.MarkOverdue(time.Now()), "NOT_PAST_DUE")
	})

	t.Run("no due date", func(t *testing.T) {
		inv := createSentInvoice(t, 200)
		assertDomainErrorCode(t, inv.MarkOverdue(time.Now()), "NOT_PAST_DUE")
	})

	t.Run("draft invoice", func(t *testing.T) {
		inv := createTestInvoice(t)
		assertDomainErrorCode(t, inv.MarkOverdue(time.Now()), "ILLEGAL_STATUS_TRANSITION")
	})
}

func TestInvoice_Cancel(t *testing.T) {
	t.Run("from draft", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Cancel("duplicate entry"))
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.Equal(t, "duplicate entry", inv.CancelReason)
	})

	t.Run("from sent with partial payment", func(t *testing.T) {
		inv := createSentInvoice(t, 500)
		_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		// Cancellation is always allowed pre-paid
		require.NoError(t, inv.Cancel("patient dispute"))
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
	})

	t.Run("from overdue", func(t *testing.T) {
		inv := createSentInvoice(t, 500)
		due := time.Now().Add(-time.Hour)
		inv.DueDate = &due
		require.NoError(t, inv.MarkOverdue(time.Now()))

		require.NoError(t, inv.Cancel("written off"))
	})

	t.Run("from paid", func(t *testing.T) {
		inv := createSentInvoice(t, 100)
		_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		assertDomainErrorCode(t, inv.Cancel("too late"), "ILLEGAL_STATUS_TRANSITION")
	})

	t.Run("missing reason", func(t *testing.T) {
		inv := createTestInvoice(t)
		assertDomainErrorCode(t, inv.Cancel(""), "INVALID_REASON")
	})
}

func TestInvoice_TransitionTo(t *testing.T) {
	t.Run("paid to draft fails", func(t *testing.T) {
		inv := createSentInvoice(t, 100)
		_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		err = inv.TransitionTo(InvoiceStatusDraft, "")
		assertDomainErrorCode(t, err, "ILLEGAL_STATUS_TRANSITION")
		assert.Contains(t, err.Error(), "PAID")
		assert.Contains(t, err.Error(), "DRAFT")
	})

	t.Run("paid not reachable explicitly", func(t *testing.T) {
		inv := createSentInvoice(t, 100)
		assertDomainErrorCode(t, inv.TransitionTo(InvoiceStatusPaid, ""), "ILLEGAL_STATUS_TRANSITION")
	})

	t.Run("unknown status", func(t *testing.T) {
		inv := createTestInvoice(t)
		assertDomainErrorCode(t, inv.TransitionTo(InvoiceStatus("ARCHIVED"), ""), "INVALID_STATUS")
	})

	t.Run("draft to sent", func(t *testing.T) {
		inv := createTestInvoice(t)
		_, err := inv.AddItem("Consultation", 1, valueobject.NewMoneyUSDFromFloat(80), nil)
		require.NoError(t, err)
		require.NoError(t, inv.TransitionTo(InvoiceStatusSent, ""))
	})
}

func TestInvoice_EffectiveStatus(t *testing.T) {
	inv := createSentInvoice(t, 200)
	due := time.Now().Add(-time.Hour)
	inv.DueDate = &due

	// Persistent status still SENT, effective status reads OVERDUE
	assert.Equal(t, InvoiceStatusSent, inv.Status)
	assert.Equal(t, InvoiceStatusOverdue, inv.EffectiveStatus(time.Now()))

	// Not past due
	future := time.Now().Add(48 * time.Hour)
	inv.DueDate = &future
	assert.Equal(t, InvoiceStatusSent, inv.EffectiveStatus(time.Now()))
}

func TestNewInvoice_Validation(t *testing.T) {
	patientID := uuid.New()
	actor := uuid.New()

	tests := []struct {
		name          string
		invoiceNumber string
		patientID     uuid.UUID
		patientName   string
		createdBy     uuid.UUID
		wantCode      string
	}{
		{"empty number", "", patientID, "Jane Doe", actor, "INVALID_INVOICE_NUMBER"},
		{"nil patient", "INV-1", uuid.Nil, "Jane Doe", actor, "INVALID_PATIENT"},
		{"empty patient name", "INV-1", patientID, "", actor, "INVALID_PATIENT_NAME"},
		{"nil actor", "INV-1", patientID, "Jane Doe", uuid.Nil, "INVALID_ACTOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.invoiceNumber, tt.patientID, tt.patientName, nil, tt.createdBy)
			assertDomainErrorCode(t, err, tt.wantCode)
		})
	}
}

func TestNewInvoice_RaisesCreatedEvent(t *testing.T) {
	inv := createTestInvoice(t)
	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "InvoiceCreated", events[0].EventType())
}

func TestInvoice_PaidEventCarriesPaidAt(t *testing.T) {
	inv := createSentInvoice(t, 100)
	inv.ClearDomainEvents()

	_, err := inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), PaymentMethodCash, "", uuid.New())
	require.NoError(t, err)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	paidEvent, ok := events[0].(*InvoicePaidEvent)
	require.True(t, ok)
	assert.Equal(t, *inv.PaidAt, paidEvent.PaidAt)
}
