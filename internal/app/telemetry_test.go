package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)).With("request_id", "req-1").WithGroup("checkout")

	logger.Debug("verifying", "id", "cs_1")
	logger.Info("resolved", "id", "cs_1")

	assert.Contains(t, debugBuf.String(), "msg=verifying")
	assert.Contains(t, debugBuf.String(), "msg=resolved")
	assert.NotContains(t, infoBuf.String(), "msg=verifying")
	assert.Contains(t, infoBuf.String(), "request_id=req-1 checkout.id=cs_1")
}

func TestInitTelemetryWithoutCollector(t *testing.T) {
	app := newTestApplication()

	shutdown, err := app.InitTelemetry()
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	shutdown(context.Background())
}
