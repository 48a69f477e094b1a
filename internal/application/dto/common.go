package dto

import (
	"fmt"
	"strings"
	"time"
)

// Envelope marca de éxito común a todas las respuestas ({"success": true, ...}).
type Envelope struct {
	Success bool `json:"success"`
}

// OK devuelve el envelope de una respuesta exitosa.
func OK() Envelope { return Envelope{Success: true} }

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeQuery parámetros de rango de fechas (YYYY-MM-DD) en query string.
type DateRangeQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// SupplierDeliveriesQuery rango de fechas más el filtro opcional por proveedor.
type SupplierDeliveriesQuery struct {
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	SupplierID string `query:"supplierId"`
}

// Range devuelve solo el rango de fechas.
func (q SupplierDeliveriesQuery) Range() DateRangeQuery {
	return DateRangeQuery{StartDate: q.StartDate, EndDate: q.EndDate}
}

// Date fecha de entrada que acepta "YYYY-MM-DD" o RFC3339. Se normaliza a UTC.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q: use YYYY-MM-DD", s)
}

// DataResponse respuesta exitosa con una entidad bajo "data".
type DataResponse struct {
	Envelope
	Data any `json:"data"`
}

// ListResponse respuesta exitosa de un listado.
type ListResponse struct {
	Envelope
	Count int `json:"count"`
	Data  any `json:"data"`
}
