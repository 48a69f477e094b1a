package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/period"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	inv "github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// StockInUseCase libro de entradas: cada mutación escribe el registro (fase 1) y luego
// aplica ConsistencyRules (fase 2), ambas dentro de la misma transacción.
type StockInUseCase struct {
	tx    TxRunner
	repo  repository.StockInRepository
	rules ConsistencyRules
	cache ports.ReportCache
	now   func() time.Time
}

// NewStockInUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewStockInUseCase(tx TxRunner, repo repository.StockInRepository, rules ConsistencyRules, cache ports.ReportCache) *StockInUseCase {
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &StockInUseCase{tx: tx, repo: repo, rules: rules, cache: cache, now: time.Now}
}

// Create registra una entrada, suma el stock del producto y la deuda restante al proveedor.
func (uc *StockInUseCase) Create(ctx context.Context, userID string, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	var created *entity.StockIn
	err := uc.tx.Run(ctx, func(r Repos) error {
		entry, err := uc.create(ctx, r, userID, in, true)
		created = entry
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.populated(ctx, created.ID)
}

// Import registra varias entradas en una sola transacción. Con backfill=true los contadores
// no cambian (carga de históricos que ya reflejan); la entrada se descuenta del stock y
// la deuda iniciales.
func (uc *StockInUseCase) Import(ctx context.Context, userID string, in dto.ImportStockInRequest) (*dto.ImportStockInResponse, error) {
	ids := make([]string, 0, len(in.Entries))
	err := uc.tx.Run(ctx, func(r Repos) error {
		for i, e := range in.Entries {
			entry, err := uc.create(ctx, r, userID, e, !in.Backfill)
			if err != nil {
				if kind := domain.KindOf(err); kind != nil {
					return domain.Errorf(kind, "entry %d: %s", i+1, domain.Message(err))
				}
				return fmt.Errorf("import entry %d: %w", i+1, err)
			}
			ids = append(ids, entry.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := &dto.ImportStockInResponse{Envelope: dto.OK(), Count: len(ids), Backfill: in.Backfill, Data: make([]dto.StockInResponse, 0, len(ids))}
	for _, id := range ids {
		e, err := uc.populated(ctx, id)
		if err != nil {
			return nil, err
		}
		out.Data = append(out.Data, *e)
	}
	return out, nil
}

func (uc *StockInUseCase) create(ctx context.Context, r Repos, userID string, in dto.CreateStockInRequest, applyCounters bool) (*entity.StockIn, error) {
	if in.Quantity <= 0 {
		return nil, domain.Errorf(domain.ErrValidation, "Quantity must be greater than 0")
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Errorf(domain.ErrValidation, "Unit price cannot be negative")
	}
	product, err := r.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Product not found")
	}
	supplier, err := r.Suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Supplier not found")
	}

	total := inv.LineTotal(in.TotalAmount, in.Quantity, in.UnitPrice)
	payment, err := inv.ResolvePayment(in.PaymentStatus, total, in.AmountPaid)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	delivery := now
	if in.DeliveryDate != nil {
		delivery = in.DeliveryDate.Time
	}
	entry := &entity.StockIn{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SupplierID:    in.SupplierID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalAmount:   total,
		PaymentStatus: payment.Status,
		AmountPaid:    payment.AmountPaid,
		RemainingDebt: payment.RemainingDebt,
		DeliveryDate:  delivery,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	// fase 1
	if err := r.StockIns.Create(ctx, entry); err != nil {
		return nil, err
	}
	// fase 2
	if !applyCounters {
		return entry, uc.rules.AbsorbBackfill(ctx, r, entry)
	}
	if err := uc.rules.ApplyStockIn(ctx, r, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update modifica estado de pago, fecha o notas. Producto y cantidad son inmutables.
// El cambio de deuda (nueva − anterior) se aplica al proveedor.
func (uc *StockInUseCase) Update(ctx context.Context, id string, in dto.UpdateStockInRequest) (*dto.StockInResponse, error) {
	err := uc.tx.Run(ctx, func(r Repos) error {
		entry, err := r.StockIns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.Errorf(domain.ErrNotFound, "Stock-in record not found")
		}
		if in.ProductID != nil || in.Quantity != nil {
			return domain.Errorf(domain.ErrInvalidOperation, "Cannot update product or quantity directly. Create a new record instead.")
		}
		originalDebt := entry.RemainingDebt
		payment, err := inv.ResolvePaymentUpdate(entry, in.PaymentStatus, in.AmountPaid)
		if err != nil {
			return err
		}
		entry.PaymentStatus = payment.Status
		entry.AmountPaid = payment.AmountPaid
		entry.RemainingDebt = payment.RemainingDebt
		if in.DeliveryDate != nil {
			entry.DeliveryDate = in.DeliveryDate.Time
		}
		if in.Notes != nil {
			entry.Notes = *in.Notes
		}
		if err := r.StockIns.Update(ctx, entry); err != nil {
			return err
		}
		return uc.rules.ApplyDebtChange(ctx, r, entry.SupplierID, payment.RemainingDebt.Sub(originalDebt))
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.populated(ctx, id)
}

// Delete revierte stock y deuda y borra la entrada.
func (uc *StockInUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(r Repos) error {
		entry, err := r.StockIns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.Errorf(domain.ErrNotFound, "Stock-in record not found")
		}
		if err := uc.rules.RevertStockIn(ctx, r, entry); err != nil {
			return err
		}
		return r.StockIns.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// Get devuelve una entrada con sus referencias resueltas.
func (uc *StockInUseCase) Get(ctx context.Context, id string) (*dto.StockInResponse, error) {
	return uc.populated(ctx, id)
}

// List lista entradas con filtros opcionales (fechas YYYY-MM-DD), más recientes primero.
func (uc *StockInUseCase) List(ctx context.Context, q dto.StockInListQuery) ([]dto.StockInResponse, error) {
	from, to, err := period.ParseOptional(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.StockInFilter{
		From:          from,
		To:            to,
		SupplierID:    q.Supplier,
		ProductID:     q.Product,
		PaymentStatus: q.PaymentStatus,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromStockIns(list), nil
}

func (uc *StockInUseCase) populated(ctx context.Context, id string) (*dto.StockInResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Stock-in record not found")
	}
	out := dto.FromStockIn(entry)
	return &out, nil
}

func (uc *StockInUseCase) invalidate(ctx context.Context) {
	ports.InvalidateReports(ctx, uc.cache, uc.rules.log)
}
