package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/cask/internal/adapters/telemetry"
	"go.trai.ch/cask/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T, log *mocks.MockLogger) *sdktrace.TracerProvider {
	t.Helper()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewBridge(log)),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp
}

func TestBridge_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var msg string
	var args []any
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).Do(func(m string, a ...any) {
		msg = m
		args = a
	})

	tracer := newProvider(t, log).Tracer("test")
	_, span := tracer.Start(context.Background(), "cask.render")
	span.SetAttributes(attribute.String("cask.source", "/srv/sass/index.scss"))
	span.End()

	assert.Equal(t, "cask.render", msg)
	require.NotEmpty(t, args)
	assert.Contains(t, args, "cask.source")
	assert.Contains(t, args, "/srv/sass/index.scss")
	assert.Contains(t, args, "duration")
}

func TestBridge_LogsFailedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var msg string
	var args []any
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).Do(func(m string, a ...any) {
		msg = m
		args = a
	})

	tracer := newProvider(t, log).Tracer("test")
	_, span := tracer.Start(context.Background(), "cask.render")
	span.SetStatus(codes.Error, "compilation failed")
	span.End()

	assert.Equal(t, "cask.render failed", msg)
	assert.Contains(t, args, "error")
	assert.Contains(t, args, "compilation failed")
}

func TestSetup_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any())

	tp := telemetry.Setup(log)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := otel.Tracer("test").Start(context.Background(), "cask.render")
	span.End()
}
