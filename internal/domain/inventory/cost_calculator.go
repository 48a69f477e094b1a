package inventory

import "github.com/shopspring/decimal"

// AverageUnitCost implementa el costo promedio simple (servicio de dominio):
// media aritmética de los precios unitarios de todas las entradas del producto.
// Sin entradas el costo es 0.
func AverageUnitCost(unitPrices []decimal.Decimal) decimal.Decimal {
	if len(unitPrices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range unitPrices {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(unitPrices))))
}

// LineTotal devuelve el total explícito si viene informado; si no, cantidad × precio.
func LineTotal(explicit *decimal.Decimal, quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	if explicit != nil && !explicit.IsZero() {
		return *explicit
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
