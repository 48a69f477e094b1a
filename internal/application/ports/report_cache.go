package ports

import (
	"context"

	"github.com/rs/zerolog"
)

// ReportCache puerto de salida para cachear reportes sin rango de fechas.
// Las entradas pertenecen a una generación: Invalidate abre una nueva y las anteriores
// dejan de ser visibles. Cualquier mutación del libro o de los registros debe llamar a Invalidate.
type ReportCache interface {
	// Get copia en dst el valor cacheado de la generación actual; devuelve esa generación
	// y false si no existe.
	Get(ctx context.Context, key string, dst any) (gen int64, hit bool, err error)
	// Set guarda value en la generación gen leída con Get antes de calcular el reporte.
	// Si gen ya fue invalidada el valor no vuelve a servirse.
	Set(ctx context.Context, key string, gen int64, value any) error
	Invalidate(ctx context.Context) error
}

// NoopReportCache implementación vacía, usada cuando Redis no está configurado.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, string, any) (int64, bool, error) { return 0, false, nil }
func (NoopReportCache) Set(context.Context, string, int64, any) error         { return nil }
func (NoopReportCache) Invalidate(context.Context) error                      { return nil }

// InvalidateReports invalida el cache tras una mutación confirmada. Un fallo solo se registra.
func InvalidateReports(ctx context.Context, cache ReportCache, log zerolog.Logger) {
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("report cache invalidation failed")
	}
}
