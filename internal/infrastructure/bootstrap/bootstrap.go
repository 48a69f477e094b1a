// Package bootstrap arma los adaptadores de infraestructura a partir de la configuración.
// Lo comparten los binarios de cmd/.
package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// MemoryDSN valor de DATABASE_URL que activa el almacenamiento en memoria.
const MemoryDSN = "memory"

// Storage repositorios y transacciones del backend elegido.
type Storage struct {
	Repos inventory.Repos
	Users repository.UserRepository
	Tx    inventory.TxRunner
	close func()
}

func (s *Storage) Close() { s.close() }

// OpenStorage usa PostgreSQL (aplicando migraciones si MIGRATIONS_AUTO) salvo DATABASE_URL=memory.
func OpenStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Storage, error) {
	if cfg.DB.DatabaseURL == MemoryDSN {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &Storage{Repos: mem.Repos(), Users: mem.Users(), Tx: mem, close: func() {}}, nil
	}

	dsn := cfg.DB.ConnectionString()
	if cfg.DB.MigrationsAuto {
		if err := postgres.Migrate(dsn, log.Zerolog()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &Storage{
		Repos: inventory.Repos{
			Products:  postgres.NewProductRepository(pool),
			Suppliers: postgres.NewSupplierRepository(pool),
			StockIns:  postgres.NewStockInRepository(pool),
			StockOuts: postgres.NewStockOutRepository(pool),
		},
		Users: postgres.NewUserRepository(pool),
		Tx:    postgres.NewTxRunner(pool),
		close: pool.Close,
	}, nil
}

// Coordination cache de reportes y locker. Sin Redis: cache vacío y lock local.
type Coordination struct {
	Cache  ports.ReportCache
	Locker ports.Locker
	client *redis.Client
}

func (c *Coordination) Close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}

// OpenCoordination conecta a Redis si REDIS_ADDR está definido.
func OpenCoordination(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Coordination, error) {
	if !cfg.Redis.Enabled() {
		return &Coordination{Cache: ports.NoopReportCache{}, Locker: ports.LocalLocker{}}, nil
	}
	client, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes y lock en Redis")
	return &Coordination{
		Cache:  cache.NewRedisReportCache(client, cfg.Report.CacheTTL, log.Zerolog()),
		Locker: cache.NewRedisLocker(client),
		client: client,
	}, nil
}
