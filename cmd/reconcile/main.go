// reconcile recalcula stock y deuda desde los libros de entradas y salidas.
//
// Uso: go run ./cmd/reconcile [-fix]
//
// Sin -fix solo informa las diferencias. Sale con código 3 si hay diferencias sin corregir.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/bootstrap"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

func main() {
	fix := flag.Bool("fix", false, "sobrescribir los contadores con los valores esperados")
	timeout := flag.Duration("timeout", 5*time.Minute, "tiempo máximo de ejecución")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "reconcile"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.Close()
	coord, err := bootstrap.OpenCoordination(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer coord.Close()

	uc := inventory.NewReconcileUseCase(store.Tx, coord.Locker, coord.Cache, log.Zerolog())
	report, err := uc.Run(ctx, *fix)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliación")
	}

	for _, d := range report.StockDrifts {
		log.Warn().Str("product", d.Name).Str("stored", d.Stored).Str("expected", d.Expected).Msg("diferencia de stock")
	}
	for _, d := range report.DebtDrifts {
		log.Warn().Str("supplier", d.Name).Str("stored", d.Stored).Str("expected", d.Expected).Msg("diferencia de deuda")
	}
	log.Info().
		Int("products", report.ProductsChecked).
		Int("suppliers", report.SuppliersChecked).
		Int("stock_drifts", len(report.StockDrifts)).
		Int("debt_drifts", len(report.DebtDrifts)).
		Bool("fixed", report.Fixed).
		Msg("reconciliación terminada")

	if !report.Fixed && len(report.StockDrifts)+len(report.DebtDrifts) > 0 {
		store.Close()
		coord.Close()
		os.Exit(3)
	}
}
