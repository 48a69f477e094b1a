package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

func TestColumnWidths(t *testing.T) {
	assert.Nil(t, columnWidths(0))
	assert.Equal(t, []int{12}, columnWidths(1))
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnWidths(5))
	assert.Equal(t, []int{2, 2, 2, 2, 1, 1, 1, 1}, columnWidths(8))

	for n := 1; n <= gridSize; n++ {
		sum := 0
		for _, w := range columnWidths(n) {
			sum += w
		}
		assert.Equal(t, gridSize, sum, "n=%d", n)
	}
}

func TestMarotoReportRenderer_Render(t *testing.T) {
	r := NewMarotoReportRenderer()
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, "pdf", r.Extension())

	doc := ports.ReportDocument{
		Title:    "Reporte de ganancias",
		Subtitle: "2024-03-01 a 2024-03-31",
		Summary: []ports.SummaryItem{
			{Label: "Ingresos", Value: "400.00"},
			{Label: "Costo", Value: "320.00"},
			{Label: "Ganancia", Value: "80.00"},
		},
		Columns: []string{"Producto", "Ingresos", "Costo", "Ganancia"},
		Rows: [][]string{
			{"Arroz", "400.00", "320.00", "80.00"},
			{"Frijol", "0.00", "0.00", "0.00"},
		},
	}
	out, err := r.Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportRenderer_EmptyAndTooWide(t *testing.T) {
	r := NewMarotoReportRenderer()

	out, err := r.Render(ports.ReportDocument{Title: "Vacío", Columns: []string{"A", "B"}})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = r.Render(ports.ReportDocument{Title: "Ancho", Columns: make([]string, 13)})
	assert.Error(t, err)
}
