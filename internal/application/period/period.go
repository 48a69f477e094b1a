// Package period interpreta los rangos de fecha (YYYY-MM-DD) de reportes y listados.
package period

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
)

const layout = "2006-01-02"

// endOfDay desplaza una fecha a las 23:59:59.999 del mismo día.
const endOfDay = 24*time.Hour - time.Millisecond

// Parse exige ambas fechas. start es inclusivo desde las 00:00; end se normaliza a 23:59:59.999.
func Parse(startStr, endStr string) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, domain.Errorf(domain.ErrValidation, "Please provide start and end dates")
	}
	start, err = time.ParseInLocation(layout, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Errorf(domain.ErrValidation, "Invalid date format. Please use YYYY-MM-DD format")
	}
	end, err = time.ParseInLocation(layout, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Errorf(domain.ErrValidation, "Invalid date format. Please use YYYY-MM-DD format")
	}
	end = end.Add(endOfDay)
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.Errorf(domain.ErrValidation, "Start date cannot be after end date")
	}
	return start, end, nil
}

// ParseOptional como Parse pero cada extremo es opcional (nil = sin límite).
func ParseOptional(startStr, endStr string) (from, to *time.Time, err error) {
	if startStr != "" {
		t, err := time.ParseInLocation(layout, startStr, time.UTC)
		if err != nil {
			return nil, nil, domain.Errorf(domain.ErrValidation, "Invalid date format. Please use YYYY-MM-DD format")
		}
		from = &t
	}
	if endStr != "" {
		t, err := time.ParseInLocation(layout, endStr, time.UTC)
		if err != nil {
			return nil, nil, domain.Errorf(domain.ErrValidation, "Invalid date format. Please use YYYY-MM-DD format")
		}
		t = t.Add(endOfDay)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.Errorf(domain.ErrValidation, "Start date cannot be after end date")
	}
	return from, to, nil
}

// Day devuelve el rango [00:00, 23:59:59.999] del día de t.
func Day(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.Add(endOfDay)
}
