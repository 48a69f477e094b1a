// Package memory implementa los puertos de persistencia en memoria. Lo usan los tests de
// los casos de uso y el modo de desarrollo sin base de datos (DATABASE_URL=memory).
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store guarda todas las entidades por valor; cada lectura devuelve una copia.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	stockIns  map[string]entity.StockIn
	stockOuts map[string]entity.StockOut
	users     map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]entity.Product{},
		suppliers: map[string]entity.Supplier{},
		stockIns:  map[string]entity.StockIn{},
		stockOuts: map[string]entity.StockOut{},
		users:     map[string]entity.User{},
	}
}

type snapshot struct {
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	stockIns  map[string]entity.StockIn
	stockOuts map[string]entity.StockOut
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		products:  maps.Clone(s.products),
		suppliers: maps.Clone(s.suppliers),
		stockIns:  maps.Clone(s.stockIns),
		stockOuts: maps.Clone(s.stockOuts),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.stockIns = snap.stockIns
	s.stockOuts = snap.stockOuts
}

// Run serializa las transacciones y, si fn falla, restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(s.repos(true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// lock toma el candado de escritura. Fuera de Run espera también a que termine la
// transacción en curso, así un rollback no pisa la escritura.
// Los repositorios obtenidos fuera de Run no deben escribir dentro de fn.
func (s *Store) lock(inTx bool) (unlock func()) {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// Repos devuelve los repositorios del store para usar fuera de Run.
func (s *Store) Repos() inventory.Repos { return s.repos(false) }

func (s *Store) repos(inTx bool) inventory.Repos {
	return inventory.Repos{
		Products:  &ProductRepo{s: s, inTx: inTx},
		Suppliers: &SupplierRepo{s: s, inTx: inTx},
		StockIns:  &StockInRepo{s: s, inTx: inTx},
		StockOuts: &StockOutRepo{s: s, inTx: inTx},
	}
}

func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }
func (s *Store) StockIns() *StockInRepo   { return &StockInRepo{s: s} }
func (s *Store) StockOuts() *StockOutRepo { return &StockOutRepo{s: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }

func (s *Store) productRef(id string) *entity.ProductRef {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return &entity.ProductRef{ID: p.ID, Name: p.Name, Category: p.Category, UnitPrice: p.UnitPrice}
}

func (s *Store) supplierRef(id string) *entity.SupplierRef {
	sup, ok := s.suppliers[id]
	if !ok {
		return nil
	}
	return &entity.SupplierRef{ID: sup.ID, Name: sup.Name, ContactPerson: sup.ContactPerson, Phone: sup.Phone}
}

func (s *Store) userName(id string) string {
	return s.users[id].Name
}
