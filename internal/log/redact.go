package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nao1215/calcsite/internal/textutil"
)

// MaskValue replaces redacted values.
const MaskValue = "[REDACTED]"

// personalKeys are attribute keys whose values are always redacted.
// Keys are compared lower-cased and without accents.
var personalKeys = map[string]bool{
	// Contact data
	"email":     true,
	"e-mail":    true,
	"correo":    true,
	"telefono":  true,
	"movil":     true,
	"phone":     true,
	"nombre":    true,
	"apellido":  true,
	"apellidos": true,
	"direccion": true,
	"address":   true,

	// Identity documents
	"dni": true,
	"nie": true,
	"nif": true,

	// Network identity
	"ip":              true,
	"remote_addr":     true,
	"x-forwarded-for": true,
	"x-real-ip":       true,

	// HTTP credentials
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"session":       true,
	"session_id":    true,
	"api_key":       true,
	"apikey":        true,
}

// personalKeywords redact any key containing them ("user_email", "auth_token").
var personalKeywords = []string{
	"password", "secret", "token", "email", "telefono", "credential",
}

// personalPatterns redact string values regardless of their key.
var personalPatterns = []*regexp.Regexp{
	// E-mail addresses
	regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`),

	// Spanish phone numbers, optionally with +34
	regexp.MustCompile(`^(\+34[\s-]?)?[6789]\d{2}[\s-]?\d{3}[\s-]?\d{3}$`),

	// DNI and NIE
	regexp.MustCompile(`(?i)^[XYZ0-9]\d{7}[A-Z]$`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Bearer and basic authorization values
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+`),
}

// RedactingHandler wraps an slog.Handler and masks personal data in record
// and handler attributes before passing them on.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler wraps handler. A nil handler wraps slog.Default's handler.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and forwards it.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs redacts attrs and returns a handler carrying them.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(out)}
}

// WithGroup returns a handler that nests attributes under name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr masks a single attribute, descending into groups.
func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if IsPersonalKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString && IsPersonalValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// IsPersonalKey reports whether values logged under key are redacted.
func IsPersonalKey(key string) bool {
	k := textutil.Fold(strings.ToLower(key))
	if personalKeys[k] {
		return true
	}
	for _, kw := range personalKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// IsPersonalValue reports whether a string value looks like personal data.
func IsPersonalValue(value string) bool {
	v := strings.TrimSpace(value)
	for _, p := range personalPatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text logger with redaction. verbose selects the Debug
// level; otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level(verbose)}
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a JSON logger with redaction, for log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level(verbose)}
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, opts)))
}

// New selects NewJSONLogger or NewLogger.
func New(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return NewJSONLogger(w, verbose)
	}
	return NewLogger(w, verbose)
}
