package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

const stockOutSelect = `
	SELECT so.id, so.product_id, so.quantity, so.sale_price, so.total_amount, so.customer,
		so.sale_date, so.notes, so.created_by, so.created_at,
		p.id, p.name, p.category, p.unit_price,
		u.name
	FROM stock_outs so
	LEFT JOIN products p ON p.id = so.product_id
	LEFT JOIN users u ON u.id = so.created_by`

// StockOutRepo implementación del libro de salidas sobre PostgreSQL.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

func scanStockOut(row pgx.Row) (*entity.StockOut, error) {
	var (
		o                            entity.StockOut
		pID, pName, pCategory, uName *string
		pPrice                       decimal.NullDecimal
	)
	err := row.Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.SalePrice, &o.TotalAmount, &o.Customer,
		&o.SaleDate, &o.Notes, &o.CreatedBy, &o.CreatedAt,
		&pID, &pName, &pCategory, &pPrice,
		&uName,
	)
	if err != nil {
		return nil, err
	}
	if pID != nil {
		o.Product = &entity.ProductRef{ID: *pID, Name: deref(pName), Category: deref(pCategory), UnitPrice: pPrice.Decimal}
	}
	o.CreatedByName = deref(uName)
	return &o, nil
}

// Create persiste la venta (fase 1).
func (r *StockOutRepo) Create(ctx context.Context, o *entity.StockOut) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_outs (id, product_id, quantity, sale_price, total_amount, customer, sale_date, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.ProductID, o.Quantity, o.SalePrice, o.TotalAmount, o.Customer, o.SaleDate, o.Notes, o.CreatedBy, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock-out: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con su producto resuelto. Devuelve (nil, nil) si no existe.
func (r *StockOutRepo) GetByID(ctx context.Context, id string) (*entity.StockOut, error) {
	o, err := scanStockOut(r.q.QueryRow(ctx, stockOutSelect+` WHERE so.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-out: %w", err)
	}
	return o, nil
}

// Update persiste precio, total, cliente, fecha y notas.
func (r *StockOutRepo) Update(ctx context.Context, o *entity.StockOut) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stock_outs SET sale_price = $2, total_amount = $3, customer = $4, sale_date = $5, notes = $6
		WHERE id = $1`,
		o.ID, o.SalePrice, o.TotalAmount, o.Customer, o.SaleDate, o.Notes,
	)
	if err != nil {
		return fmt.Errorf("update stock-out: %w", err)
	}
	return nil
}

// Delete elimina la venta.
func (r *StockOutRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_outs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock-out: %w", err)
	}
	return nil
}

// List lista ventas filtradas, más recientes primero.
func (r *StockOutRepo) List(ctx context.Context, f repository.StockOutFilter) ([]*entity.StockOut, error) {
	var w whereBuilder
	if f.From != nil {
		w.add("so.sale_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("so.sale_date <= ?", *f.To)
	}
	if f.ProductID != "" {
		w.add("so.product_id = ?", f.ProductID)
	}
	if f.Customer != "" {
		w.add("so.customer = ?", f.Customer)
	}
	rows, err := r.q.Query(ctx, stockOutSelect+w.sql()+` ORDER BY so.sale_date DESC, so.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock-outs: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockOut
	for rows.Next() {
		o, err := scanStockOut(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock-out: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// SumQuantityByProduct Σ quantity vendida por producto.
func (r *StockOutRepo) SumQuantityByProduct(ctx context.Context) (map[string]int, error) {
	return sumQuantity(ctx, r.q, `SELECT product_id, COALESCE(SUM(quantity), 0) FROM stock_outs GROUP BY product_id`)
}
