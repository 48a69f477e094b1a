package ports

// SummaryItem par etiqueta/valor del encabezado de un reporte exportado.
type SummaryItem struct {
	Label string
	Value string
}

// ReportDocument representación tabular de un reporte, independiente del formato.
type ReportDocument struct {
	Title    string
	Subtitle string
	Summary  []SummaryItem
	Columns  []string
	Rows     [][]string
}

// ReportRenderer puerto de exportación (PDF, XLSX).
type ReportRenderer interface {
	Render(doc ReportDocument) ([]byte, error)
	ContentType() string
	Extension() string
}
