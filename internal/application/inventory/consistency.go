package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// ConsistencyRules segunda fase de cada mutación del libro: ajusta los contadores
// Product.CurrentStock y Supplier.TotalDebt con incrementos atómicos de una fila.
// Un contador cuya fila ya no existe (referencia colgante) se ignora.
type ConsistencyRules struct {
	log zerolog.Logger
}

// NewConsistencyRules construye las reglas con el logger de la aplicación.
func NewConsistencyRules(log zerolog.Logger) ConsistencyRules {
	return ConsistencyRules{log: log}
}

// ApplyStockIn suma la cantidad al stock del producto y la deuda restante al proveedor.
func (c ConsistencyRules) ApplyStockIn(ctx context.Context, r Repos, in *entity.StockIn) error {
	if err := r.Products.IncrementStock(ctx, in.ProductID, in.Quantity); err != nil {
		return fmt.Errorf("apply stock-in to product: %w", err)
	}
	if err := c.ApplyDebtChange(ctx, r, in.SupplierID, in.RemainingDebt); err != nil {
		return err
	}
	c.log.Debug().Str("stock_in", in.ID).Str("product", in.ProductID).Int("qty", in.Quantity).
		Str("debt", in.RemainingDebt.String()).Msg("stock-in applied")
	return nil
}

// RevertStockIn deshace ApplyStockIn (borrado de la entrada).
func (c ConsistencyRules) RevertStockIn(ctx context.Context, r Repos, in *entity.StockIn) error {
	if err := r.Products.IncrementStock(ctx, in.ProductID, -in.Quantity); err != nil {
		return fmt.Errorf("revert stock-in on product: %w", err)
	}
	if err := c.ApplyDebtChange(ctx, r, in.SupplierID, in.RemainingDebt.Neg()); err != nil {
		return err
	}
	c.log.Debug().Str("stock_in", in.ID).Str("product", in.ProductID).Int("qty", in.Quantity).Msg("stock-in reverted")
	return nil
}

// AbsorbBackfill registra una entrada histórica cuyos contadores ya la reflejan: en lugar
// de tocar current_stock y total_debt, descuenta la entrada de opening_stock y opening_debt
// para que la reconciliación siga cuadrando.
func (c ConsistencyRules) AbsorbBackfill(ctx context.Context, r Repos, in *entity.StockIn) error {
	if err := r.Products.IncrementOpeningStock(ctx, in.ProductID, -in.Quantity); err != nil {
		return fmt.Errorf("absorb backfill on product: %w", err)
	}
	if !in.RemainingDebt.IsZero() {
		if err := r.Suppliers.IncrementOpeningDebt(ctx, in.SupplierID, in.RemainingDebt.Neg()); err != nil {
			return fmt.Errorf("absorb backfill on supplier: %w", err)
		}
	}
	c.log.Debug().Str("stock_in", in.ID).Str("product", in.ProductID).Int("qty", in.Quantity).Msg("stock-in backfilled")
	return nil
}

// ApplyDebtChange suma delta a la deuda del proveedor. Delta cero no toca la BD.
func (c ConsistencyRules) ApplyDebtChange(ctx context.Context, r Repos, supplierID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	if err := r.Suppliers.IncrementDebt(ctx, supplierID, delta); err != nil {
		return fmt.Errorf("apply debt change: %w", err)
	}
	return nil
}

// ApplyStockOut descuenta la cantidad vendida del stock del producto.
func (c ConsistencyRules) ApplyStockOut(ctx context.Context, r Repos, out *entity.StockOut) error {
	if err := r.Products.IncrementStock(ctx, out.ProductID, -out.Quantity); err != nil {
		return fmt.Errorf("apply stock-out to product: %w", err)
	}
	c.log.Debug().Str("stock_out", out.ID).Str("product", out.ProductID).Int("qty", out.Quantity).Msg("stock-out applied")
	return nil
}

// RevertStockOut devuelve al stock la cantidad de una venta borrada.
func (c ConsistencyRules) RevertStockOut(ctx context.Context, r Repos, out *entity.StockOut) error {
	if err := r.Products.IncrementStock(ctx, out.ProductID, out.Quantity); err != nil {
		return fmt.Errorf("revert stock-out on product: %w", err)
	}
	c.log.Debug().Str("stock_out", out.ID).Str("product", out.ProductID).Int("qty", out.Quantity).Msg("stock-out reverted")
	return nil
}
