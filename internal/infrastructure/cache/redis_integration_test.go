//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockledger-api/pkg/config"
)

// newRedis levanta Redis en un contenedor y devuelve su dirección host:puerto.
func newRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "no se pudo iniciar el contenedor de Redis")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return addr
}

type snapshot struct {
	Stock int `json:"stock"`
}

func TestRedisReportCache_Generaciones(t *testing.T) {
	ctx := context.Background()
	client, err := cache.NewClient(ctx, config.RedisConfig{Addr: newRedis(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewRedisReportCache(client, time.Minute, zerolog.Nop())

	var got snapshot
	gen, hit, err := c.Get(ctx, "report:stock-status", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, c.Set(ctx, "report:stock-status", gen, snapshot{Stock: 6}))

	_, hit, err = c.Get(ctx, "report:stock-status", &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 6, got.Stock)

	// Una escritura con la generación ya invalidada no vuelve a servirse
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, "report:stock-status", gen, snapshot{Stock: 6}))
	newGen, hit, err := c.Get(ctx, "report:stock-status", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, gen+1, newGen)
}

func TestRedisLocker_Exclusivo(t *testing.T) {
	ctx := context.Background()
	client, err := cache.NewClient(ctx, config.RedisConfig{Addr: newRedis(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	locker := cache.NewRedisLocker(client)

	lock, err := locker.Obtain(ctx, "stockledger:reconcile", time.Minute)
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, "stockledger:reconcile", time.Minute)
	assert.ErrorIs(t, err, ports.ErrLockNotObtained)

	require.NoError(t, lock.Release(ctx))
	lock, err = locker.Obtain(ctx, "stockledger:reconcile", time.Minute)
	require.NoError(t, err)
	require.NoError(t, lock.Release(ctx))
}
