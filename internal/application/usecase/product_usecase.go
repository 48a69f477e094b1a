package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock normalmente cambia vía el libro;
// un ajuste manual de currentStock se acumula también en OpeningStock para poder reconciliar.
type ProductUseCase struct {
	repo  repository.ProductRepository
	tx    inventory.TxRunner
	cache ports.ReportCache
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx inventory.TxRunner, cache ports.ReportCache, log zerolog.Logger) *ProductUseCase {
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &ProductUseCase{repo: repo, tx: tx, cache: cache, log: log}
}

// Create crea un nuevo producto. minStockLevel por defecto 10.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.Errorf(domain.ErrValidation, "Name and category are required")
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Errorf(domain.ErrValidation, "Unit price cannot be negative")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "A product with this name already exists")
	}
	minLevel := entity.DefaultMinStockLevel
	if in.MinStockLevel != nil {
		minLevel = *in.MinStockLevel
	}
	stock := 0
	if in.CurrentStock != nil {
		stock = *in.CurrentStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		UnitPrice:     in.UnitPrice,
		CurrentStock:  stock,
		MinStockLevel: minLevel,
		OpeningStock:  stock,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Product not found")
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update actualiza un producto bajo bloqueo de fila. Un currentStock explícito es un ajuste manual:
// la diferencia se suma también a OpeningStock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		product, err := r.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.Errorf(domain.ErrNotFound, "Product not found")
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name != product.Name {
				other, err := r.Products.GetByName(ctx, name)
				if err != nil {
					return err
				}
				if other != nil && other.ID != product.ID {
					return domain.Errorf(domain.ErrDuplicate, "A product with this name already exists")
				}
			}
			product.Name = name
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.Errorf(domain.ErrValidation, "Unit price cannot be negative")
			}
			product.UnitPrice = *in.UnitPrice
		}
		if in.MinStockLevel != nil {
			product.MinStockLevel = *in.MinStockLevel
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.CurrentStock != nil {
			product.OpeningStock += *in.CurrentStock - product.CurrentStock
			product.CurrentStock = *in.CurrentStock
		}
		product.UpdatedAt = time.Now()
		updated = product
		return r.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	out := dto.FromProduct(updated)
	return &out, nil
}

// List lista productos ordenados por categoría y nombre.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{Category: q.Category, Search: q.Search})
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(list), nil
}

// ListLowStock productos con currentStock < minStockLevel.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(list), nil
}

// Delete elimina un producto. Las entradas/salidas que lo referencian quedan colgando.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.Errorf(domain.ErrNotFound, "Product not found")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	ports.InvalidateReports(ctx, uc.cache, uc.log)
	return nil
}
