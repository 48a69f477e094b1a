package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func str(s string) *string { return &s }

// El invariante pagado + deuda == total se cumple en todos los estados válidos.
func TestResolvePayment_Estados(t *testing.T) {
	total := dec(800)
	cases := []struct {
		name       string
		status     string
		amountPaid *decimal.Decimal
		wantStatus string
		wantPaid   decimal.Decimal
		wantDebt   decimal.Decimal
	}{
		{"paid", entity.PaymentPaid, nil, entity.PaymentPaid, dec(800), dec(0)},
		{"paid ignora amountPaid", entity.PaymentPaid, ptr(dec(10)), entity.PaymentPaid, dec(800), dec(0)},
		{"partial", entity.PaymentPartial, ptr(dec(300)), entity.PaymentPartial, dec(300), dec(500)},
		{"unpaid", entity.PaymentUnpaid, nil, entity.PaymentUnpaid, dec(0), dec(800)},
		{"estado vacío es unpaid", "", nil, entity.PaymentUnpaid, dec(0), dec(800)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := inventory.ResolvePayment(tc.status, total, tc.amountPaid)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, p.Status)
			assert.True(t, tc.wantPaid.Equal(p.AmountPaid), "pagado: %s", p.AmountPaid)
			assert.True(t, tc.wantDebt.Equal(p.RemainingDebt), "deuda: %s", p.RemainingDebt)
			assert.True(t, total.Equal(p.AmountPaid.Add(p.RemainingDebt)), "pagado + deuda debe ser el total")
		})
	}
}

func TestResolvePayment_PartialSinMonto(t *testing.T) {
	for _, paid := range []*decimal.Decimal{nil, ptr(decimal.Zero)} {
		_, err := inventory.ResolvePayment(entity.PaymentPartial, dec(800), paid)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, "Amount paid must be provided for partial payment", domain.Message(err))
	}
}

func TestResolvePayment_Rechazos(t *testing.T) {
	_, err := inventory.ResolvePayment(entity.PaymentPartial, dec(800), ptr(dec(900)))
	assert.ErrorIs(t, err, domain.ErrValidation, "pagar más que el total no es válido")

	_, err = inventory.ResolvePayment(entity.PaymentPartial, dec(800), ptr(dec(-1)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = inventory.ResolvePayment("Pending", dec(800), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolvePaymentUpdate(t *testing.T) {
	current := &entity.StockIn{
		TotalAmount:   dec(800),
		PaymentStatus: entity.PaymentUnpaid,
		AmountPaid:    decimal.Zero,
		RemainingDebt: dec(800),
	}

	t.Run("sin cambios", func(t *testing.T) {
		p, err := inventory.ResolvePaymentUpdate(current, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentUnpaid, p.Status)
		assert.True(t, dec(800).Equal(p.RemainingDebt))
	})

	t.Run("unpaid a paid", func(t *testing.T) {
		p, err := inventory.ResolvePaymentUpdate(current, str(entity.PaymentPaid), nil)
		require.NoError(t, err)
		assert.True(t, dec(800).Equal(p.AmountPaid))
		assert.True(t, p.RemainingDebt.IsZero())
	})

	t.Run("solo monto deriva el estado", func(t *testing.T) {
		p, err := inventory.ResolvePaymentUpdate(current, nil, ptr(dec(800)))
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPaid, p.Status)

		p, err = inventory.ResolvePaymentUpdate(current, nil, ptr(dec(200)))
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPartial, p.Status)
		assert.True(t, dec(600).Equal(p.RemainingDebt))

		p, err = inventory.ResolvePaymentUpdate(current, nil, ptr(decimal.Zero))
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentUnpaid, p.Status)
	})

	t.Run("partial conserva el monto previo", func(t *testing.T) {
		partial := *current
		partial.PaymentStatus = entity.PaymentPartial
		partial.AmountPaid = dec(300)
		partial.RemainingDebt = dec(500)

		p, err := inventory.ResolvePaymentUpdate(&partial, str(entity.PaymentPartial), nil)
		require.NoError(t, err)
		assert.True(t, dec(300).Equal(p.AmountPaid))
		assert.True(t, dec(500).Equal(p.RemainingDebt))
	})

	t.Run("estado inválido", func(t *testing.T) {
		_, err := inventory.ResolvePaymentUpdate(current, str("Overdue"), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
