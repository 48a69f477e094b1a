package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo libro de salidas en memoria.
type StockOutRepo struct {
	s    *Store
	inTx bool
}

func (r *StockOutRepo) Create(_ context.Context, o *entity.StockOut) error {
	defer r.s.lock(r.inTx)()
	stored := *o
	stored.Product, stored.CreatedByName = nil, ""
	r.s.stockOuts[o.ID] = stored
	return nil
}

func (r *StockOutRepo) populate(o entity.StockOut) *entity.StockOut {
	o.Product = r.s.productRef(o.ProductID)
	o.CreatedByName = r.s.userName(o.CreatedBy)
	return &o
}

func (r *StockOutRepo) GetByID(_ context.Context, id string) (*entity.StockOut, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.stockOuts[id]
	if !ok {
		return nil, nil
	}
	return r.populate(o), nil
}

func (r *StockOutRepo) Update(_ context.Context, o *entity.StockOut) error {
	defer r.s.lock(r.inTx)()
	current, ok := r.s.stockOuts[o.ID]
	if !ok {
		return nil
	}
	current.SalePrice = o.SalePrice
	current.TotalAmount = o.TotalAmount
	current.Customer = o.Customer
	current.SaleDate = o.SaleDate
	current.Notes = o.Notes
	r.s.stockOuts[o.ID] = current
	return nil
}

func (r *StockOutRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	delete(r.s.stockOuts, id)
	return nil
}

func (r *StockOutRepo) List(_ context.Context, f repository.StockOutFilter) ([]*entity.StockOut, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockOut
	for _, o := range r.s.stockOuts {
		switch {
		case f.From != nil && o.SaleDate.Before(*f.From):
			continue
		case f.To != nil && o.SaleDate.After(*f.To):
			continue
		case f.ProductID != "" && o.ProductID != f.ProductID:
			continue
		case f.Customer != "" && o.Customer != f.Customer:
			continue
		}
		list = append(list, r.populate(o))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SaleDate.Equal(list[j].SaleDate) {
			return list[i].SaleDate.After(list[j].SaleDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *StockOutRepo) SumQuantityByProduct(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, o := range r.s.stockOuts {
		out[o.ProductID] += o.Quantity
	}
	return out, nil
}
