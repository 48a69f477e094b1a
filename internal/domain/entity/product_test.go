package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

func TestProduct_StockStatus(t *testing.T) {
	cases := []struct {
		stock, min int
		want       string
	}{
		{0, 10, entity.StockStatusOutOfStock},
		{-3, 10, entity.StockStatusOutOfStock},
		{1, 10, entity.StockStatusLowStock},
		{9, 10, entity.StockStatusLowStock},
		{10, 10, entity.StockStatusHealthy},
		{5, 0, entity.StockStatusHealthy},
	}
	for _, tc := range cases {
		p := entity.Product{CurrentStock: tc.stock, MinStockLevel: tc.min}
		assert.Equal(t, tc.want, p.StockStatus(), "stock=%d min=%d", tc.stock, tc.min)
	}
}
