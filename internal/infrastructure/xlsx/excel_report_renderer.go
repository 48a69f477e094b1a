// Package xlsx exporta reportes a Excel con excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

const sheetName = "Report"

var _ ports.ReportRenderer = (*ExcelReportRenderer)(nil)

// ExcelReportRenderer escribe el resumen arriba y la tabla debajo, en una sola hoja.
type ExcelReportRenderer struct{}

func NewExcelReportRenderer() *ExcelReportRenderer { return &ExcelReportRenderer{} }

func (ExcelReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (ExcelReportRenderer) Extension() string { return "xlsx" }

func (ExcelReportRenderer) Render(doc ports.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := &sheetWriter{f: f, row: 1}
	w.write(bold, doc.Title)
	if doc.Subtitle != "" {
		w.write(0, doc.Subtitle)
	}
	w.row++
	for _, it := range doc.Summary {
		w.write(0, it.Label, it.Value)
	}
	if len(doc.Summary) > 0 {
		w.row++
	}
	if len(doc.Columns) > 0 {
		w.write(header, doc.Columns...)
		for _, values := range doc.Rows {
			w.write(0, values...)
		}
		if err := w.err; err == nil {
			last, _ := excelize.ColumnNumberToName(len(doc.Columns))
			w.err = f.SetColWidth(sheetName, "A", last, 18)
		}
	}
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: escribir celdas: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter escribe filas consecutivas y conserva el primer error.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) write(style int, values ...string) {
	if w.err != nil || len(values) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if w.err = w.f.SetSheetRow(sheetName, cell, &row); w.err != nil {
		return
	}
	if style != 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), w.row)
		w.err = w.f.SetCellStyle(sheetName, cell, end, style)
	}
	w.row++
}
