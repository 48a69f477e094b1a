package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	for _, other := range r.s.products {
		if other.Name == p.Name {
			return domain.Errorf(domain.ErrDuplicate, "A product with this name already exists")
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByIDForUpdate equivale a GetByID: las transacciones del store ya están serializadas.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[p.ID]; !ok {
		return nil
	}
	for _, other := range r.s.products {
		if other.ID != p.ID && other.Name == p.Name {
			return domain.Errorf(domain.ErrDuplicate, "A product with this name already exists")
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(f.Search)
	return r.filter(func(p entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(p.Name), search)
	}), nil
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	list := r.filter(func(p entity.Product) bool { return p.CurrentStock < p.MinStockLevel })
	sort.SliceStable(list, func(i, j int) bool { return list[i].CurrentStock < list[j].CurrentStock })
	return list, nil
}

// filter devuelve copias ordenadas por (category, name).
func (r *ProductRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Name < list[j].Name
	})
	return list
}

func (r *ProductRepo) IncrementStock(_ context.Context, id string, delta int) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.CurrentStock += delta
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) IncrementOpeningStock(_ context.Context, id string, delta int) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.OpeningStock += delta
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, id string, stock int) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.CurrentStock = stock
	r.s.products[id] = p
	return nil
}
