package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler renders slog records as short human-readable lines for a
// terminal: kitchen-clock time, padded level, message, then key=value
// attributes. Sensitive attribute values are masked before they reach
// the writer. Color is applied only when the writer supports it.
type Handler struct {
	opts     slog.HandlerOptions
	out      io.Writer
	mu       *sync.Mutex
	useColor bool
	attrs    []slog.Attr
	groups   []string
}

var (
	timeColor  = color.New(color.FgHiBlack)
	traceColor = color.New(color.FgHiBlack)
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgCyan)
)

// NewHandler returns a terminal text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts:     *opts,
		out:      out,
		mu:       &sync.Mutex{},
		useColor: SupportsColor(out),
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle implements slog.Handler. The mutex serializes writers sharing
// one terminal; attribute order is WithAttrs first, record attrs after.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !r.Time.IsZero() {
		fmt.Fprintf(h.out, "%s ", h.paint(timeColor, r.Time.Format(time.Kitchen)))
	}
	fmt.Fprintf(h.out, "%-5s %s", h.levelLabel(r.Level), r.Message)

	for _, a := range h.attrs {
		h.writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(a)
		return true
	})

	fmt.Fprintln(h.out)
	return nil
}

func (h *Handler) levelLabel(level slog.Level) string {
	label := level.String()
	if level == LevelTrace {
		label = "TRACE"
	}
	switch {
	case level >= slog.LevelError:
		return h.paint(errorColor, label)
	case level >= slog.LevelWarn:
		return h.paint(warnColor, label)
	case level >= slog.LevelInfo:
		return h.paint(infoColor, label)
	case level >= slog.LevelDebug:
		return h.paint(debugColor, label)
	default:
		return h.paint(traceColor, label)
	}
}

func (h *Handler) writeAttr(a slog.Attr) {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	value := a.Value.Any()
	if ShouldMask(a.Key) {
		value = MaskValue(fmt.Sprint(value))
	}

	fmt.Fprintf(h.out, " %s=%v", h.paint(keyColor, key), value)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.useColor {
		return s
	}
	return c.Sprint(s)
}

// WithAttrs implements slog.Handler. The derived handler carries its own
// attribute slice so siblings derived from the same parent stay isolated.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, h.attrs...)
	derived.attrs = append(derived.attrs, attrs...)
	return &derived
}

// WithGroup implements slog.Handler. Groups become dotted key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := *h
	derived.groups = make([]string, 0, len(h.groups)+1)
	derived.groups = append(derived.groups, h.groups...)
	derived.groups = append(derived.groups, name)
	return &derived
}
