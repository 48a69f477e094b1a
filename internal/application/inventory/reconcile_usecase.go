package inventory

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

const (
	reconcileLockKey = "stockledger:reconcile"
	reconcileLockTTL = 2 * time.Minute
)

// ReconcileUseCase recalcula los contadores desde el libro:
//
//	stock esperado = opening_stock + Σ entradas − Σ salidas
//	deuda esperada = opening_debt + Σ remaining_debt de las entradas del proveedor
//
// y reporta las diferencias. Con fix=true sobrescribe los contadores en la misma transacción.
type ReconcileUseCase struct {
	tx     TxRunner
	locker ports.Locker
	cache  ports.ReportCache
	log    zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso. locker nil equivale a ports.LocalLocker.
func NewReconcileUseCase(tx TxRunner, locker ports.Locker, cache ports.ReportCache, log zerolog.Logger) *ReconcileUseCase {
	if locker == nil {
		locker = ports.LocalLocker{}
	}
	if cache == nil {
		cache = ports.NoopReportCache{}
	}
	return &ReconcileUseCase{tx: tx, locker: locker, cache: cache, log: log}
}

// Run ejecuta una pasada de reconciliación. Devuelve ErrConflict si otra instancia está reconciliando.
func (uc *ReconcileUseCase) Run(ctx context.Context, fix bool) (*dto.ReconcileReport, error) {
	lock, err := uc.locker.Obtain(ctx, reconcileLockKey, reconcileLockTTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockNotObtained) {
			return nil, domain.Errorf(domain.ErrConflict, "A reconciliation is already running")
		}
		return nil, err
	}
	defer func() { _ = lock.Release(context.WithoutCancel(ctx)) }()

	report := &dto.ReconcileReport{
		Envelope:    dto.OK(),
		Fixed:       fix,
		StockDrifts: []dto.CounterDrift{},
		DebtDrifts:  []dto.CounterDrift{},
	}
	err = uc.tx.Run(ctx, func(r Repos) error {
		if err := uc.reconcileStock(ctx, r, fix, report); err != nil {
			return err
		}
		return uc.reconcileDebt(ctx, r, fix, report)
	})
	if err != nil {
		return nil, err
	}
	if fix && (len(report.StockDrifts) > 0 || len(report.DebtDrifts) > 0) {
		ports.InvalidateReports(ctx, uc.cache, uc.log)
	}
	uc.log.Info().
		Bool("fix", fix).
		Int("stock_drifts", len(report.StockDrifts)).
		Int("debt_drifts", len(report.DebtDrifts)).
		Msg("reconciliation finished")
	return report, nil
}

func (uc *ReconcileUseCase) reconcileStock(ctx context.Context, r Repos, fix bool, report *dto.ReconcileReport) error {
	products, err := r.Products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	in, err := r.StockIns.SumQuantityByProduct(ctx)
	if err != nil {
		return err
	}
	out, err := r.StockOuts.SumQuantityByProduct(ctx)
	if err != nil {
		return err
	}
	report.ProductsChecked = len(products)
	for _, p := range products {
		expected := p.OpeningStock + in[p.ID] - out[p.ID]
		if expected == p.CurrentStock {
			continue
		}
		report.StockDrifts = append(report.StockDrifts, dto.CounterDrift{
			ID:       p.ID,
			Name:     p.Name,
			Stored:   strconv.Itoa(p.CurrentStock),
			Expected: strconv.Itoa(expected),
		})
		uc.log.Warn().Str("product", p.ID).Int("stored", p.CurrentStock).Int("expected", expected).Msg("stock drift")
		if fix {
			if err := r.Products.SetStock(ctx, p.ID, expected); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *ReconcileUseCase) reconcileDebt(ctx context.Context, r Repos, fix bool, report *dto.ReconcileReport) error {
	suppliers, err := r.Suppliers.List(ctx)
	if err != nil {
		return err
	}
	debts, err := r.StockIns.SumDebtBySupplier(ctx)
	if err != nil {
		return err
	}
	report.SuppliersChecked = len(suppliers)
	for _, s := range suppliers {
		expected := s.OpeningDebt.Add(debts[s.ID])
		if expected.Equal(s.TotalDebt) {
			continue
		}
		report.DebtDrifts = append(report.DebtDrifts, dto.CounterDrift{
			ID:       s.ID,
			Name:     s.Name,
			Stored:   s.TotalDebt.String(),
			Expected: expected.String(),
		})
		uc.log.Warn().Str("supplier", s.ID).Str("stored", s.TotalDebt.String()).Str("expected", expected.String()).Msg("debt drift")
		if fix {
			if err := r.Suppliers.SetDebt(ctx, s.ID, expected); err != nil {
				return err
			}
		}
	}
	return nil
}
