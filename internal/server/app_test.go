package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.HTTPAddr = "127.0.0.1:0"
	c.HealthAddrGRPC = "127.0.0.1:0"
	c.HealthCheckInterval = time.Hour
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_MemoryStore(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	assert.NotNil(t, app.http)
	assert.NotNil(t, app.health)
	require.NoError(t, app.repomanager.Ping(context.Background()))
}

func TestNewApp_HealthDisabled(t *testing.T) {
	c := memoryConfig()
	c.HealthAddrGRPC = ""
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, app.health)
}

func TestNewApp_UnknownNotifier(t *testing.T) {
	c := memoryConfig()
	c.Notifier = "pigeon"
	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
