// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"reflect"
	"time"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
)

// Format names accepted by NewHandler.
const (
	FormatAuto     = ""
	FormatTerminal = "terminal"
	FormatLogfmt   = "logfmt"
	FormatJSON     = "json"
)

const timeFormat = "2006-01-02T15:04:05-0700"

// NewHandler returns a handler printing records at or above level in the given format.
// FormatAuto picks the colored terminal format when wr is a terminal, logfmt otherwise.
// Changing level later takes effect on the returned handler.
func NewHandler(wr io.Writer, level *slog.LevelVar, format string) (slog.Handler, error) {
	switch format {
	case FormatAuto:
		if f, ok := wr.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return terminalHandler(wr, level, true), nil
		}
		return logfmtHandler(wr, level), nil
	case FormatTerminal:
		return terminalHandler(wr, level, false), nil
	case FormatLogfmt:
		return logfmtHandler(wr, level), nil
	case FormatJSON:
		return slog.NewJSONHandler(wr, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr { return replaceAttr(attr, false) },
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func logfmtHandler(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr { return replaceAttr(attr, true) },
	})
}

// terminalHandler lets everything through the terminal formatter and filters on level.
func terminalHandler(wr io.Writer, level *slog.LevelVar, useColor bool) slog.Handler {
	return &levelFilter{
		Handler: ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor),
		level:   level,
	}
}

type levelFilter struct {
	slog.Handler
	level slog.Leveler
}

func (h *levelFilter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelFilter{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

// replaceAttr renders time, level and numeric values the way the terminal format does.
func replaceAttr(attr slog.Attr, logfmt bool) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String("lvl", ethlog.LevelString(l))
		}
	}

	switch v := attr.Value.Any().(type) {
	case time.Time:
		if logfmt {
			attr = slog.String(attr.Key, v.Format(timeFormat))
		}
	case *big.Int:
		attr.Value = nilOr(v == nil, v)
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		attr.Value = nilOr(rv.Kind() == reflect.Pointer && rv.IsNil(), v)
	}
	return attr
}

func nilOr(isNil bool, v fmt.Stringer) slog.Value {
	if isNil {
		return slog.StringValue("<nil>")
	}
	return slog.StringValue(v.String())
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// lazyHandler resolves the root handler on every record, carrying its own attributes.
type lazyHandler struct {
	ctx   []any
	attrs []slog.Attr
}

func (h *lazyHandler) root() slog.Handler {
	return ethlog.Root().Handler()
}

func (h *lazyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.root().Enabled(ctx, level)
}

func (h *lazyHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.Add(h.ctx...)
	r.AddAttrs(h.attrs...)
	return h.root().Handle(ctx, r)
}

func (h *lazyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &lazyHandler{
		ctx:   h.ctx,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *lazyHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}
