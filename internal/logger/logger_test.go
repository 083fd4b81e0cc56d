// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" Info ": zapcore.InfoLevel,
		"WARN":   zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"dpanic": zapcore.DPanicLevel,
		"panic":  zapcore.PanicLevel,
		"fatal":  zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

func TestContext(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithKV(WithName(ctx, "bench"), "run", "r1")

	InfoKV(ctx, "started", "steps", 3)
	DebugKV(ctx, "tick")
	WarnKV(ctx, "mismatch")
	ErrorKV(ctx, "failed")
	Infof(ctx, "done in %d ticks", 7)

	entries := logs.All()
	require.Len(t, entries, 5)
	require.Equal(t, "bench", entries[0].LoggerName)
	require.Equal(t, map[string]any{"run": "r1", "steps": int64(3)}, entries[0].ContextMap())
	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, "done in 7 ticks", entries[4].Message)
}

func TestWithLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).Sugar()
	l.Debug("dropped")

	verbose := l.WithOptions(WithLevel(zapcore.DebugLevel))
	verbose.Debug("kept")
	verbose.With("k", 1).Debug("kept too")

	quiet := l.WithOptions(WithLevel(zapcore.ErrorLevel))
	quiet.Info("dropped")

	require.Equal(t, 2, logs.Len())
	require.Equal(t, "kept", logs.All()[0].Message)
}
