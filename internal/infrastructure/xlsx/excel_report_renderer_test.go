package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

func TestExcelReportRenderer_Render(t *testing.T) {
	r := NewExcelReportRenderer()
	assert.Equal(t, "xlsx", r.Extension())

	out, err := r.Render(ports.ReportDocument{
		Title:    "Stock Status Report",
		Subtitle: "all products",
		Summary:  []ports.SummaryItem{{Label: "Total products", Value: "2"}},
		Columns:  []string{"Product", "Stock"},
		Rows:     [][]string{{"Rice", "5"}, {"Beans", "-1"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	// título, subtítulo, separador, resumen, separador, cabecera y dos filas
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Stock Status Report"}, rows[0])
	assert.Empty(t, rows[2])
	assert.Equal(t, []string{"Total products", "2"}, rows[3])
	assert.Equal(t, []string{"Product", "Stock"}, rows[5])
	assert.Equal(t, []string{"Beans", "-1"}, rows[7])
}
