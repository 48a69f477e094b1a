// import_stock carga entradas históricas desde un CSV.
//
// Uso: go run ./cmd/import_stock [-backfill] [-latin1] [-user <id>] entradas.csv
//
// Cabecera: product,supplier,quantity,unitPrice,totalAmount,paymentStatus,amountPaid,deliveryDate,notes
// product y supplier aceptan ID o nombre. Con -backfill no se modifican stock ni deuda;
// las entradas se descuentan del stock y la deuda iniciales.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/bootstrap"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

func main() {
	backfill := flag.Bool("backfill", false, "no actualizar stock ni deuda (importación histórica)")
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	userID := flag.String("user", "", "ID del usuario que figura como creador")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_stock [-backfill] [-latin1] [-user id] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_stock"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	entries, err := readEntries(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	if len(entries) == 0 {
		log.Warn().Msg("el archivo no tiene entradas")
		return
	}

	ctx := context.Background()
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

	if err := resolveRefs(ctx, store.Repos, entries); err != nil {
		log.Fatal().Err(err).Msg("resolver productos y proveedores")
	}

	uc := inventory.NewStockInUseCase(store.Tx, store.Repos.StockIns, inventory.NewConsistencyRules(log.Zerolog()), coord.Cache)
	out, err := uc.Import(ctx, *userID, dto.ImportStockInRequest{Entries: entries, Backfill: *backfill})
	if err != nil {
		log.Fatal().Err(err).Msg("importar entradas")
	}
	log.Info().Int("count", out.Count).Bool("backfill", out.Backfill).Msg("importación completada")
}

// resolveRefs reemplaza nombres de producto y proveedor por su ID. Un valor que no
// coincide ni por ID ni por nombre se deja tal cual; la importación lo rechaza.
func resolveRefs(ctx context.Context, r inventory.Repos, entries []dto.CreateStockInRequest) error {
	products := map[string]string{}
	suppliers := map[string]string{}
	for i := range entries {
		e := &entries[i]
		if id, ok := products[e.ProductID]; ok {
			e.ProductID = id
		} else {
			key := e.ProductID
			p, err := r.Products.GetByID(ctx, key)
			if err != nil {
				return err
			}
			if p == nil {
				if p, err = r.Products.GetByName(ctx, key); err != nil {
					return err
				}
			}
			if p != nil {
				e.ProductID = p.ID
			}
			products[key] = e.ProductID
		}

		if id, ok := suppliers[e.SupplierID]; ok {
			e.SupplierID = id
		} else {
			key := e.SupplierID
			s, err := r.Suppliers.GetByID(ctx, key)
			if err != nil {
				return err
			}
			if s == nil {
				if s, err = r.Suppliers.GetByName(ctx, key); err != nil {
					return err
				}
			}
			if s != nil {
				e.SupplierID = s.ID
			}
			suppliers[key] = e.SupplierID
		}
	}
	return nil
}
