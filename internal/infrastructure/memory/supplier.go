package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s    *Store
	inTx bool
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	defer r.s.lock(r.inTx)()
	for _, other := range r.s.suppliers {
		if other.Name == sup.Name {
			return domain.Errorf(domain.ErrValidation, "A supplier with this name already exists")
		}
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sup := range r.s.suppliers {
		if sup.Name == name {
			return &sup, nil
		}
	}
	return nil, nil
}

// Update no modifica TotalDebt ni OpeningDebt.
func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	defer r.s.lock(r.inTx)()
	current, ok := r.s.suppliers[sup.ID]
	if !ok {
		return nil
	}
	updated := *sup
	updated.TotalDebt = current.TotalDebt
	updated.OpeningDebt = current.OpeningDebt
	r.s.suppliers[sup.ID] = updated
	return nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	delete(r.s.suppliers, id)
	return nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	list := r.filter(func(entity.Supplier) bool { return true })
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *SupplierRepo) ListWithDebt(_ context.Context) ([]*entity.Supplier, error) {
	list := r.filter(func(s entity.Supplier) bool { return s.TotalDebt.IsPositive() })
	sort.Slice(list, func(i, j int) bool {
		if !list[i].TotalDebt.Equal(list[j].TotalDebt) {
			return list[i].TotalDebt.GreaterThan(list[j].TotalDebt)
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *SupplierRepo) filter(keep func(entity.Supplier) bool) []*entity.Supplier {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Supplier
	for _, sup := range r.s.suppliers {
		if keep(sup) {
			list = append(list, &sup)
		}
	}
	return list
}

func (r *SupplierRepo) IncrementDebt(_ context.Context, id string, delta decimal.Decimal) error {
	defer r.s.lock(r.inTx)()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil
	}
	sup.TotalDebt = sup.TotalDebt.Add(delta)
	r.s.suppliers[id] = sup
	return nil
}

func (r *SupplierRepo) IncrementOpeningDebt(_ context.Context, id string, delta decimal.Decimal) error {
	defer r.s.lock(r.inTx)()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil
	}
	sup.OpeningDebt = sup.OpeningDebt.Add(delta)
	r.s.suppliers[id] = sup
	return nil
}

func (r *SupplierRepo) SetDebt(_ context.Context, id string, debt decimal.Decimal) error {
	defer r.s.lock(r.inTx)()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil
	}
	sup.TotalDebt = debt
	r.s.suppliers[id] = sup
	return nil
}
