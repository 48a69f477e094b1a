package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// SupplierUseCase casos de uso del registro de proveedores. TotalDebt solo cambia vía el libro de entradas.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	stockIns repository.StockInRepository
	cache    ports.ReportCache
	log      zerolog.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, stockIns repository.StockInRepository, cache ports.ReportCache, log zerolog.Logger) *SupplierUseCase {
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &SupplierUseCase{repo: repo, stockIns: stockIns, cache: cache, log: log}
}

// Create crea un proveedor con deuda 0. El nombre es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrValidation, "Supplier name is required")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrValidation, "A supplier with this name already exists")
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		TotalDebt:     decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	out := dto.FromSupplier(s)
	return &out, nil
}

// GetByID devuelve el proveedor con sus entregas (más recientes primero).
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Supplier not found")
	}
	deliveries, err := uc.stockIns.List(ctx, repository.StockInFilter{SupplierID: id})
	if err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	out.Deliveries = dto.FromStockIns(deliveries)
	return &out, nil
}

// Update actualiza los datos de contacto.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Supplier not found")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != s.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != s.ID {
				return nil, domain.Errorf(domain.ErrValidation, "A supplier with this name already exists")
			}
		}
		s.Name = name
	}
	if in.ContactPerson != nil {
		s.ContactPerson = *in.ContactPerson
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	out := dto.FromSupplier(s)
	return &out, nil
}

// List lista todos los proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromSuppliers(list), nil
}

// ListWithDebt proveedores con deuda > 0, mayor deuda primero.
func (uc *SupplierUseCase) ListWithDebt(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListWithDebt(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromSuppliers(list), nil
}

// Delete elimina el proveedor si ninguna entrada lo referencia.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.Errorf(domain.ErrNotFound, "Supplier not found")
	}
	n, err := uc.stockIns.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Errorf(domain.ErrInvalidOperation, "Cannot delete supplier with associated delivery records. Please delete those records first or update them.")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	return nil
}
