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

var _ repository.StockInRepository = (*StockInRepo)(nil)

// LEFT JOIN: una referencia borrada deja las columnas en NULL y el ref queda nil.
const stockInSelect = `
	SELECT si.id, si.product_id, si.supplier_id, si.quantity, si.unit_price, si.total_amount,
		si.payment_status, si.amount_paid, si.remaining_debt, si.delivery_date, si.notes,
		si.created_by, si.created_at,
		p.id, p.name, p.category, p.unit_price,
		s.id, s.name, s.contact_person, s.phone,
		u.name
	FROM stock_ins si
	LEFT JOIN products p ON p.id = si.product_id
	LEFT JOIN suppliers s ON s.id = si.supplier_id
	LEFT JOIN users u ON u.id = si.created_by`

// StockInRepo implementación del libro de entradas sobre PostgreSQL.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

func scanStockIn(row pgx.Row) (*entity.StockIn, error) {
	var (
		in                                  entity.StockIn
		pID, pName, pCategory               *string
		pPrice                              decimal.NullDecimal
		sID, sName, sContact, sPhone, uName *string
	)
	err := row.Scan(
		&in.ID, &in.ProductID, &in.SupplierID, &in.Quantity, &in.UnitPrice, &in.TotalAmount,
		&in.PaymentStatus, &in.AmountPaid, &in.RemainingDebt, &in.DeliveryDate, &in.Notes,
		&in.CreatedBy, &in.CreatedAt,
		&pID, &pName, &pCategory, &pPrice,
		&sID, &sName, &sContact, &sPhone,
		&uName,
	)
	if err != nil {
		return nil, err
	}
	if pID != nil {
		in.Product = &entity.ProductRef{ID: *pID, Name: deref(pName), Category: deref(pCategory), UnitPrice: pPrice.Decimal}
	}
	if sID != nil {
		in.Supplier = &entity.SupplierRef{ID: *sID, Name: deref(sName), ContactPerson: deref(sContact), Phone: deref(sPhone)}
	}
	in.CreatedByName = deref(uName)
	return &in, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create persiste la entrada (fase 1; los contadores los ajusta ConsistencyRules).
func (r *StockInRepo) Create(ctx context.Context, in *entity.StockIn) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_ins (id, product_id, supplier_id, quantity, unit_price, total_amount,
			payment_status, amount_paid, remaining_debt, delivery_date, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		in.ID, in.ProductID, in.SupplierID, in.Quantity, in.UnitPrice, in.TotalAmount,
		in.PaymentStatus, in.AmountPaid, in.RemainingDebt, in.DeliveryDate, in.Notes, in.CreatedBy, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock-in: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada con referencias resueltas. Devuelve (nil, nil) si no existe.
func (r *StockInRepo) GetByID(ctx context.Context, id string) (*entity.StockIn, error) {
	in, err := scanStockIn(r.q.QueryRow(ctx, stockInSelect+` WHERE si.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-in: %w", err)
	}
	return in, nil
}

// Update persiste estado de pago, montos, fecha y notas.
func (r *StockInRepo) Update(ctx context.Context, in *entity.StockIn) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stock_ins SET payment_status = $2, amount_paid = $3, remaining_debt = $4, delivery_date = $5, notes = $6
		WHERE id = $1`,
		in.ID, in.PaymentStatus, in.AmountPaid, in.RemainingDebt, in.DeliveryDate, in.Notes,
	)
	if err != nil {
		return fmt.Errorf("update stock-in: %w", err)
	}
	return nil
}

// Delete elimina la entrada.
func (r *StockInRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_ins WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock-in: %w", err)
	}
	return nil
}

// List lista entradas filtradas, más recientes primero.
func (r *StockInRepo) List(ctx context.Context, f repository.StockInFilter) ([]*entity.StockIn, error) {
	var w whereBuilder
	if f.From != nil {
		w.add("si.delivery_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("si.delivery_date <= ?", *f.To)
	}
	if f.SupplierID != "" {
		w.add("si.supplier_id = ?", f.SupplierID)
	}
	if f.ProductID != "" {
		w.add("si.product_id = ?", f.ProductID)
	}
	if f.PaymentStatus != "" {
		w.add("si.payment_status = ?", f.PaymentStatus)
	}
	return r.list(ctx, stockInSelect+w.sql()+` ORDER BY si.delivery_date DESC, si.created_at DESC`, w.args...)
}

// ListUnpaid entradas con saldo pendiente, más recientes primero.
func (r *StockInRepo) ListUnpaid(ctx context.Context) ([]*entity.StockIn, error) {
	return r.list(ctx, stockInSelect+` WHERE si.payment_status <> 'Paid' AND si.remaining_debt > 0 ORDER BY si.delivery_date DESC`)
}

func (r *StockInRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockIn, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock-ins: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockIn
	for rows.Next() {
		in, err := scanStockIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock-in: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// CountBySupplier cuántas entradas referencian al proveedor (guarda de borrado).
func (r *StockInRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_ins WHERE supplier_id = $1`, supplierID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock-ins by supplier: %w", err)
	}
	return n, nil
}

// UnitPricesByProduct precios unitarios de todas las entradas del producto.
func (r *StockInRepo) UnitPricesByProduct(ctx context.Context, productID string) ([]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `SELECT unit_price FROM stock_ins WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("unit prices by product: %w", err)
	}
	defer rows.Close()
	var prices []decimal.Decimal
	for rows.Next() {
		var p decimal.Decimal
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan unit price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// SumQuantityByProduct Σ quantity por producto.
func (r *StockInRepo) SumQuantityByProduct(ctx context.Context) (map[string]int, error) {
	return sumQuantity(ctx, r.q, `SELECT product_id, COALESCE(SUM(quantity), 0) FROM stock_ins GROUP BY product_id`)
}

// SumDebtBySupplier Σ remaining_debt por proveedor.
func (r *StockInRepo) SumDebtBySupplier(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `SELECT supplier_id, COALESCE(SUM(remaining_debt), 0) FROM stock_ins GROUP BY supplier_id`)
	if err != nil {
		return nil, fmt.Errorf("sum debt by supplier: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan debt sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

func sumQuantity(ctx context.Context, q Querier, query string) (map[string]int, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum quantity: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var id string
		var sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan quantity sum: %w", err)
		}
		out[id] = int(sum)
	}
	return out, rows.Err()
}
