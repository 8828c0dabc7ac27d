// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the structured logger used across the module. It is a thin layer over the
// go-ethereum logger, which itself sits on log/slog.
package log

import (
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a slog handler.
type Logger = ethlog.Logger

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// SetDefault replaces the root logger.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

// NewLogger returns a logger writing to the given handler.
func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// WithContext returns a logger that is bound to the root logger at call time, with the given context.
// Loggers are usually created at package level, so changing the root afterwards is honoured
// through a lazily resolved handler.
func WithContext(ctx ...any) Logger {
	return ethlog.NewLogger(&lazyHandler{ctx: ctx})
}

// FromVerbosity maps the 0 (crit) .. 5 (trace) command line verbosity onto a level.
func FromVerbosity(v int) slog.Level {
	return ethlog.FromLegacyLevel(v)
}
