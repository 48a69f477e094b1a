package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, contact_person, phone, email, address, total_debt, opening_debt, created_at, updated_at`

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.Email, &s.Address, &s.TotalDebt, &s.OpeningDebt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.ContactPerson, s.Phone, s.Email, s.Address, s.TotalDebt, s.OpeningDebt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrValidation, "A supplier with this name already exists")
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor. Devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id, "get supplier")
}

// GetByName obtiene un proveedor por nombre exacto.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = $1`, name, "get supplier by name")
}

func (r *SupplierRepo) getOne(ctx context.Context, query, arg, op string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Update actualiza los datos de contacto. total_debt y opening_debt no se tocan aquí.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact_person = $3, phone = $4, email = $5, address = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Name, s.ContactPerson, s.Phone, s.Email, s.Address, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrValidation, "A supplier with this name already exists")
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete elimina un proveedor.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// List lista proveedores por nombre.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	return r.list(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
}

// ListWithDebt proveedores con total_debt > 0, mayor deuda primero.
func (r *SupplierRepo) ListWithDebt(ctx context.Context) ([]*entity.Supplier, error) {
	return r.list(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE total_debt > 0 ORDER BY total_debt DESC, name`)
}

func (r *SupplierRepo) list(ctx context.Context, query string) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// IncrementDebt suma delta a total_debt en una sola sentencia. Sin fila, no hace nada.
func (r *SupplierRepo) IncrementDebt(ctx context.Context, id string, delta decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE suppliers SET total_debt = total_debt + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("increment supplier debt: %w", err)
	}
	return nil
}

// IncrementOpeningDebt suma delta a opening_debt (carga de históricos).
func (r *SupplierRepo) IncrementOpeningDebt(ctx context.Context, id string, delta decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE suppliers SET opening_debt = opening_debt + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("increment supplier opening debt: %w", err)
	}
	return nil
}

// SetDebt sobrescribe total_debt (reconciliación).
func (r *SupplierRepo) SetDebt(ctx context.Context, id string, debt decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE suppliers SET total_debt = $2, updated_at = now() WHERE id = $1`,
		id, debt,
	)
	if err != nil {
		return fmt.Errorf("set supplier debt: %w", err)
	}
	return nil
}
