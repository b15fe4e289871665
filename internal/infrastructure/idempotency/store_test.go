package idempotency_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Facturador-api/internal/infrastructure/idempotency"
)

func runStoreContract(t *testing.T, store idempotency.Store) {
	ctx := context.Background()

	got, err := store.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Nil(t, got, "la primera solicitud reserva la clave")

	_, err = store.Begin(ctx, "k1", "fp-a")
	assert.ErrorIs(t, err, idempotency.ErrInFlight)

	_, err = store.Begin(ctx, "k1", "fp-b")
	assert.ErrorIs(t, err, idempotency.ErrKeyReused, "en curso con otro cuerpo")

	want := idempotency.Response{Status: 201, ContentType: "application/json", Body: []byte(`{"id":"1"}`), Fingerprint: "fp-a"}
	require.NoError(t, store.Complete(ctx, "k1", want))

	got, err = store.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	got, err = store.Begin(ctx, "k1", "fp-b")
	assert.ErrorIs(t, err, idempotency.ErrKeyReused, "completada con otro cuerpo")
	assert.Nil(t, got)

	// Abort libera la clave para reintentar, incluso con otro cuerpo
	_, err = store.Begin(ctx, "k2", "fp-a")
	require.NoError(t, err)
	require.NoError(t, store.Abort(ctx, "k2"))
	got, err = store.Begin(ctx, "k2", "fp-b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, idempotency.NewMemoryStore(time.Minute))
}

func TestMemoryStore_Expira(t *testing.T) {
	store := idempotency.NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	_, err := store.Begin(ctx, "k", "fp")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	got, err := store.Begin(ctx, "k", "otro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	runStoreContract(t, idempotency.NewRedisStoreWithClient(client, "test:", time.Minute))
}
