package inventory

import (
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Payment resultado de aplicar las reglas de pago a una entrada.
type Payment struct {
	Status        string
	AmountPaid    decimal.Decimal
	RemainingDebt decimal.Decimal
}

// ResolvePayment aplica las reglas de pago al crear una entrada:
//   - Paid:    pagado = total, deuda = 0
//   - Partial: amountPaid obligatorio, deuda = total - pagado
//   - Unpaid:  pagado = 0, deuda = total (también cuando el estado viene vacío)
func ResolvePayment(status string, total decimal.Decimal, amountPaid *decimal.Decimal) (Payment, error) {
	switch status {
	case entity.PaymentPaid:
		return Payment{Status: entity.PaymentPaid, AmountPaid: total, RemainingDebt: decimal.Zero}, nil
	case entity.PaymentPartial:
		if amountPaid == nil || amountPaid.IsZero() {
			return Payment{}, domain.Errorf(domain.ErrValidation, "Amount paid must be provided for partial payment")
		}
		return partial(total, *amountPaid)
	case entity.PaymentUnpaid, "":
		return Payment{Status: entity.PaymentUnpaid, AmountPaid: decimal.Zero, RemainingDebt: total}, nil
	}
	return Payment{}, domain.Errorf(domain.ErrValidation, "Invalid payment status %q: use Paid, Partial or Unpaid", status)
}

// ResolvePaymentUpdate recalcula el pago de una entrada existente.
// status y amountPaid nil significan "sin cambios". Si solo llega amountPaid, el estado
// se deriva del nuevo monto para no romper pagado + deuda == total.
func ResolvePaymentUpdate(current *entity.StockIn, status *string, amountPaid *decimal.Decimal) (Payment, error) {
	total := current.TotalAmount
	if status == nil {
		if amountPaid == nil {
			return Payment{Status: current.PaymentStatus, AmountPaid: current.AmountPaid, RemainingDebt: current.RemainingDebt}, nil
		}
		p, err := partial(total, *amountPaid)
		if err != nil {
			return Payment{}, err
		}
		p.Status = deriveStatus(p)
		return p, nil
	}
	switch *status {
	case entity.PaymentPaid:
		return Payment{Status: entity.PaymentPaid, AmountPaid: total, RemainingDebt: decimal.Zero}, nil
	case entity.PaymentPartial:
		paid := current.AmountPaid
		if amountPaid != nil {
			paid = *amountPaid
		}
		return partial(total, paid)
	case entity.PaymentUnpaid:
		return Payment{Status: entity.PaymentUnpaid, AmountPaid: decimal.Zero, RemainingDebt: total}, nil
	}
	return Payment{}, domain.Errorf(domain.ErrValidation, "Invalid payment status %q: use Paid, Partial or Unpaid", *status)
}

func partial(total, paid decimal.Decimal) (Payment, error) {
	if paid.IsNegative() {
		return Payment{}, domain.Errorf(domain.ErrValidation, "Amount paid cannot be negative")
	}
	if paid.GreaterThan(total) {
		return Payment{}, domain.Errorf(domain.ErrValidation, "Amount paid (%s) exceeds total amount (%s)", paid.String(), total.String())
	}
	return Payment{Status: entity.PaymentPartial, AmountPaid: paid, RemainingDebt: total.Sub(paid)}, nil
}

func deriveStatus(p Payment) string {
	switch {
	case p.RemainingDebt.IsZero():
		return entity.PaymentPaid
	case p.AmountPaid.IsZero():
		return entity.PaymentUnpaid
	}
	return entity.PaymentPartial
}
