package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())

	w.add("si.supplier_id = ?", "s-1")
	w.add("si.delivery_date >= ?", "2024-01-01")
	assert.Equal(t, " WHERE si.supplier_id = $1 AND si.delivery_date >= $2", w.sql())
	assert.Equal(t, []any{"s-1", "2024-01-01"}, w.args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/stock?sslmode=disable", migrateURL("postgres://u:p@db:5432/stock?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/stock", migrateURL("postgresql://u@db/stock"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
