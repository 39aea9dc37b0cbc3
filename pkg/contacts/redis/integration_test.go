//go:build integration

package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/bastiangx/dialserve/pkg/contacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var sharedAddr string

// TestMain sets up a shared Redis container for the integration tests
func TestMain(m *testing.M) {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:8-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("Failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		log.Fatalf("Failed to get container port: %v", err)
	}
	sharedAddr = fmt.Sprintf("%s:%s", host, port.Port())

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
	os.Exit(code)
}

func TestStoreAndScan(t *testing.T) {
	ctx := context.Background()
	src, err := New(Config{Addr: sharedAddr, Namespace: "it-scan", PageSize: 2})
	require.NoError(t, err)
	defer src.Close()

	records := []contacts.Record{
		{ID: 1, LookupKey: "a", DisplayName: "Alice Baker", PhoneNumber: "5551112222"},
		{ID: 2, LookupKey: "b", DisplayName: "Alan Cho", PhoneNumber: "5553334444"},
		{ID: 1, LookupKey: "a", DisplayName: "Alice Baker", PhoneNumber: "5559998888"},
		{ID: 3, LookupKey: "c", DisplayName: "Bob", PhoneNumber: "5550000000"},
		{ID: 4, LookupKey: "d", DisplayName: "Dana", PhoneNumber: "5551231234"},
	}
	require.NoError(t, src.Store(ctx, records))

	got, err := contacts.Collect(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, records, got, "order survives paging")

	require.NoError(t, src.Store(ctx, records[:1]))
	got, err = contacts.Collect(ctx, src)
	require.NoError(t, err)
	assert.Len(t, got, 1, "store replaces the namespace")
}

func TestOpenThroughRegistry(t *testing.T) {
	src, err := contacts.Open("redis", Config{Addr: sharedAddr, Namespace: "it-empty"})
	require.NoError(t, err)
	defer src.Close()

	got, err := contacts.Collect(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnreachable(t *testing.T) {
	_, err := New(Config{Addr: "127.0.0.1:1"})
	assert.ErrorIs(t, err, contacts.ErrSourceUnavailable)
}
