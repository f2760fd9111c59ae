// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It discards everything until Initialize
	// is called.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether the logger writes JSON lines.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Verbosity levels counted from repeated -v flags.
const (
	VerbosityUser  = 0 // warnings and errors only
	VerbosityInfo  = 1 // + progress
	VerbosityDebug = 2 // + plan details and watch events
)

// VerbosityToLevel maps a -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Initialize sets up the global logger. Logs go to stderr so generated code
// printed on stdout stays clean.
func Initialize(verbosity int, jsonOutput bool) error {
	return InitializeWriter(os.Stderr, verbosity, jsonOutput)
}

// InitializeWriter is Initialize with an explicit destination.
func InitializeWriter(w io.Writer, verbosity int, jsonOutput bool) error {
	JSONOutput = jsonOutput

	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), VerbosityToLevel(verbosity))
	Logger = zap.New(core).Sugar()
	return nil
}
