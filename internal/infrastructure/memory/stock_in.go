package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo libro de entradas en memoria.
type StockInRepo struct {
	s    *Store
	inTx bool
}

func (r *StockInRepo) Create(_ context.Context, in *entity.StockIn) error {
	defer r.s.lock(r.inTx)()
	stored := *in
	stored.Product, stored.Supplier, stored.CreatedByName = nil, nil, ""
	r.s.stockIns[in.ID] = stored
	return nil
}

// populate resuelve referencias; llamar con el lock tomado.
func (r *StockInRepo) populate(in entity.StockIn) *entity.StockIn {
	in.Product = r.s.productRef(in.ProductID)
	in.Supplier = r.s.supplierRef(in.SupplierID)
	in.CreatedByName = r.s.userName(in.CreatedBy)
	return &in
}

func (r *StockInRepo) GetByID(_ context.Context, id string) (*entity.StockIn, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in, ok := r.s.stockIns[id]
	if !ok {
		return nil, nil
	}
	return r.populate(in), nil
}

func (r *StockInRepo) Update(_ context.Context, in *entity.StockIn) error {
	defer r.s.lock(r.inTx)()
	current, ok := r.s.stockIns[in.ID]
	if !ok {
		return nil
	}
	current.PaymentStatus = in.PaymentStatus
	current.AmountPaid = in.AmountPaid
	current.RemainingDebt = in.RemainingDebt
	current.DeliveryDate = in.DeliveryDate
	current.Notes = in.Notes
	r.s.stockIns[in.ID] = current
	return nil
}

func (r *StockInRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	delete(r.s.stockIns, id)
	return nil
}

func (r *StockInRepo) List(_ context.Context, f repository.StockInFilter) ([]*entity.StockIn, error) {
	return r.filter(func(in entity.StockIn) bool {
		switch {
		case f.From != nil && in.DeliveryDate.Before(*f.From):
			return false
		case f.To != nil && in.DeliveryDate.After(*f.To):
			return false
		case f.SupplierID != "" && in.SupplierID != f.SupplierID:
			return false
		case f.ProductID != "" && in.ProductID != f.ProductID:
			return false
		case f.PaymentStatus != "" && in.PaymentStatus != f.PaymentStatus:
			return false
		}
		return true
	}), nil
}

func (r *StockInRepo) ListUnpaid(_ context.Context) ([]*entity.StockIn, error) {
	return r.filter(func(in entity.StockIn) bool {
		return in.PaymentStatus != entity.PaymentPaid && in.RemainingDebt.IsPositive()
	}), nil
}

// filter devuelve entradas pobladas, más recientes primero.
func (r *StockInRepo) filter(keep func(entity.StockIn) bool) []*entity.StockIn {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockIn
	for _, in := range r.s.stockIns {
		if keep(in) {
			list = append(list, r.populate(in))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DeliveryDate.Equal(list[j].DeliveryDate) {
			return list[i].DeliveryDate.After(list[j].DeliveryDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (r *StockInRepo) CountBySupplier(_ context.Context, supplierID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, in := range r.s.stockIns {
		if in.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *StockInRepo) UnitPricesByProduct(_ context.Context, productID string) ([]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var prices []decimal.Decimal
	for _, in := range r.s.stockIns {
		if in.ProductID == productID {
			prices = append(prices, in.UnitPrice)
		}
	}
	return prices, nil
}

func (r *StockInRepo) SumQuantityByProduct(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, in := range r.s.stockIns {
		out[in.ProductID] += in.Quantity
	}
	return out, nil
}

func (r *StockInRepo) SumDebtBySupplier(_ context.Context) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]decimal.Decimal{}
	for _, in := range r.s.stockIns {
		out[in.SupplierID] = out[in.SupplierID].Add(in.RemainingDebt)
	}
	return out, nil
}
