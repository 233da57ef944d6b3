package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	cli "gopkg.in/urfave/cli.v1"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestFail(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	err := Fail(zap.New(core), "cannot load model", errors.New("boom"))

	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cannot load model", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}
