// Package pdf exporta reportes a PDF con Maroto v2.
//
// Layout de la página A4 (horizontal si hay muchas columnas):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO                                  Generado: fecha    │
//	│  Subtítulo (período)                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: etiqueta / valor                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo del reporte                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// gridSize ancho de la grilla de Maroto.
const gridSize = 12

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa ports.ReportRenderer.
type MarotoReportRenderer struct {
	now func() time.Time
}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer {
	return &MarotoReportRenderer{now: time.Now}
}

func (r *MarotoReportRenderer) ContentType() string { return "application/pdf" }
func (r *MarotoReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoReportRenderer) Render(doc ports.ReportDocument) ([]byte, error) {
	if len(doc.Columns) > gridSize {
		return nil, fmt.Errorf("pdf: máximo %d columnas, recibidas %d", gridSize, len(doc.Columns))
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true)
	if len(doc.Columns) > 5 {
		builder = builder.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(builder.Build())

	m.AddRows(r.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if len(doc.Summary) > 0 {
		m.AddRows(summaryRows(doc.Summary)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	widths := columnWidths(len(doc.Columns))
	if len(widths) > 0 {
		m.AddRows(tableHeaderRow(doc.Columns, widths))
		m.AddRows(tableRows(doc.Rows, widths)...)
	}
	if len(doc.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros para el período", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y subtítulo (izq), fecha de generación (der).
func (r *MarotoReportRenderer) headerRow(doc ports.ReportDocument) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Subtitle, " "), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.now().UTC().Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: pares etiqueta/valor de a dos por fila.
func summaryRows(items []ports.SummaryItem) []core.Row {
	rows := make([]core.Row, 0, (len(items)+1)/2)
	for i := 0; i < len(items); i += 2 {
		cols := summaryCols(items[i])
		if i+1 < len(items) {
			cols = append(cols, summaryCols(items[i+1])...)
		} else {
			cols = append(cols, col.New(6))
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

func summaryCols(it ports.SummaryItem) []core.Col {
	return []core.Col{
		col.New(3).Add(text.New(it.Label+":", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(3).Add(text.New(it.Value, props.Text{
			Size: 8, Top: 1, Align: align.Right, Right: 4,
		})),
	}
}

// tableHeaderRow: cabecera con fondo primario.
func tableHeaderRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, len(columns))
	for i, label := range columns {
		cols[i] = col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: cellAlign(i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, alternando fondo.
func tableRows(data [][]string, widths []int) []core.Row {
	result := make([]core.Row, 0, len(data))
	for n, values := range data {
		cols := make([]core.Col, len(widths))
		for i := range widths {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			cols[i] = col.New(widths[i]).Add(text.New(v, props.Text{
				Size: 8, Align: cellAlign(i), Top: 1, Left: 1, Right: 1,
			}))
		}
		r := row.New(6).Add(cols...)
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte la grilla entre n columnas; el resto va a las primeras.
// Ej: 5 → [3 3 2 2 2]
func columnWidths(n int) []int {
	if n == 0 {
		return nil
	}
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

// cellAlign: la primera columna es texto, el resto cifras.
func cellAlign(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
