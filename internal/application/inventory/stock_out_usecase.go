package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/period"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	inv "github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// StockOutUseCase libro de salidas (ventas).
type StockOutUseCase struct {
	tx    TxRunner
	repo  repository.StockOutRepository
	rules ConsistencyRules
	cache ports.ReportCache
	now   func() time.Time
}

// NewStockOutUseCase construye el caso de uso.
func NewStockOutUseCase(tx TxRunner, repo repository.StockOutRepository, rules ConsistencyRules, cache ports.ReportCache) *StockOutUseCase {
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &StockOutUseCase{tx: tx, repo: repo, rules: rules, cache: cache, now: time.Now}
}

// Create registra una venta. Bloquea la fila del producto (SELECT FOR UPDATE) para que
// la verificación de stock y el descuento no se intercalen con otra venta concurrente.
func (uc *StockOutUseCase) Create(ctx context.Context, userID string, in dto.CreateStockOutRequest) (*dto.StockOutResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.Errorf(domain.ErrValidation, "Quantity must be greater than 0")
	}
	if in.SalePrice.IsNegative() {
		return nil, domain.Errorf(domain.ErrValidation, "Sale price cannot be negative")
	}
	var id string
	err := uc.tx.Run(ctx, func(r Repos) error {
		product, err := r.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.Errorf(domain.ErrNotFound, "Product not found")
		}
		if product.CurrentStock < in.Quantity {
			return domain.Errorf(domain.ErrInsufficientStock, "Not enough stock. Available: %d, Requested: %d", product.CurrentStock, in.Quantity)
		}
		now := uc.now()
		saleDate := now
		if in.SaleDate != nil {
			saleDate = in.SaleDate.Time
		}
		out := &entity.StockOut{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			SalePrice:   in.SalePrice,
			TotalAmount: inv.LineTotal(in.TotalAmount, in.Quantity, in.SalePrice),
			Customer:    in.Customer,
			SaleDate:    saleDate,
			Notes:       in.Notes,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
		if err := r.StockOuts.Create(ctx, out); err != nil {
			return err
		}
		id = out.ID
		return uc.rules.ApplyStockOut(ctx, r, out)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.populated(ctx, id)
}

// Update modifica precio, total, cliente, fecha o notas. Si cambia el precio sin total
// explícito, el total se recalcula con la cantidad original.
func (uc *StockOutUseCase) Update(ctx context.Context, id string, in dto.UpdateStockOutRequest) (*dto.StockOutResponse, error) {
	err := uc.tx.Run(ctx, func(r Repos) error {
		out, err := r.StockOuts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if out == nil {
			return domain.Errorf(domain.ErrNotFound, "Stock-out record not found")
		}
		if in.ProductID != nil || in.Quantity != nil {
			return domain.Errorf(domain.ErrInvalidOperation, "Cannot update product or quantity directly. Create a new record instead.")
		}
		if in.SalePrice != nil {
			if in.SalePrice.IsNegative() {
				return domain.Errorf(domain.ErrValidation, "Sale price cannot be negative")
			}
			out.SalePrice = *in.SalePrice
			out.TotalAmount = inv.LineTotal(in.TotalAmount, out.Quantity, out.SalePrice)
		} else if in.TotalAmount != nil {
			out.TotalAmount = *in.TotalAmount
		}
		if in.Customer != nil {
			out.Customer = *in.Customer
		}
		if in.SaleDate != nil {
			out.SaleDate = in.SaleDate.Time
		}
		if in.Notes != nil {
			out.Notes = *in.Notes
		}
		return r.StockOuts.Update(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.populated(ctx, id)
}

// Delete devuelve la cantidad al stock y borra la venta.
func (uc *StockOutUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(r Repos) error {
		out, err := r.StockOuts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if out == nil {
			return domain.Errorf(domain.ErrNotFound, "Stock-out record not found")
		}
		if err := uc.rules.RevertStockOut(ctx, r, out); err != nil {
			return err
		}
		return r.StockOuts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *StockOutUseCase) Get(ctx context.Context, id string) (*dto.StockOutResponse, error) {
	return uc.populated(ctx, id)
}

// List lista ventas con filtros opcionales, más recientes primero.
func (uc *StockOutUseCase) List(ctx context.Context, q dto.StockOutListQuery) ([]dto.StockOutResponse, error) {
	from, to, err := period.ParseOptional(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.StockOutFilter{From: from, To: to, ProductID: q.Product, Customer: q.Customer})
	if err != nil {
		return nil, err
	}
	return dto.FromStockOuts(list), nil
}

// Today ventas del día en curso con su ingreso total.
func (uc *StockOutUseCase) Today(ctx context.Context) (*dto.TodaySalesResponse, error) {
	start, end := period.Day(uc.now().UTC())
	list, err := uc.repo.List(ctx, repository.StockOutFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, o := range list {
		revenue = revenue.Add(o.TotalAmount)
	}
	return &dto.TodaySalesResponse{
		Envelope:     dto.OK(),
		Count:        len(list),
		TotalRevenue: revenue,
		Data:         dto.FromStockOuts(list),
	}, nil
}

func (uc *StockOutUseCase) populated(ctx context.Context, id string) (*dto.StockOutResponse, error) {
	out, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Stock-out record not found")
	}
	res := dto.FromStockOut(out)
	return &res, nil
}

func (uc *StockOutUseCase) invalidate(ctx context.Context) {
	ports.InvalidateReports(ctx, uc.cache, uc.rules.log)
}
