package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/uifirst/internal/app"
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, log *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		mocks.NewMockConfigWatcher(ctrl),
		mocks.NewMockScriptLoader(ctrl),
		mocks.NewMockReportStore(ctrl),
		mocks.NewMockInspector(ctrl),
		mocks.NewMockTaskRecorder(ctrl),
		log,
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApp(ctrl, mocks.NewMockConfigLoader(ctrl), mockLogger)

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() { cleaned = true }, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := newApp(ctrl, mockLoader, mockLogger)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	mockLoader.EXPECT().Load("uifirst.yaml").Return(domain.Config{}, errors.New("load failed"))

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"replay", "fling.yaml"}, stderr, provider, func(a *app.App) {
		a.WithOutput(new(bytes.Buffer))
	})

	assert.Equal(t, 1, exitCode)
}
