package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// ParseLevel regresa Info para valores vacíos o desconocidos.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return Warn
	}
	if i := slices.Index(levelNames[:], s); i >= 0 {
		return Level(i)
	}
	return Info
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return "info"
	}
	return levelNames[l]
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stdout.
	Output io.Writer
}

// sink es compartido por todos los loggers derivados con With.
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	encode func(*bytes.Buffer, record)
	now    func() time.Time
}

type record struct {
	ts     time.Time
	level  Level
	msg    string
	fields map[string]any
}

type lineLogger struct {
	sink   *sink
	fields map[string]any
}

func New(opts Options) Logger {
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}

	s := &sink{w: w, level: opts.Level, encode: encodeText, now: time.Now}
	if opts.Format == FormatJSON {
		s.encode = encodeJSON
	}

	l := &lineLogger{sink: s}
	if app := strings.TrimSpace(opts.App); app != "" {
		l.fields = map[string]any{"app": app}
	}
	return l
}

func (l *lineLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &lineLogger{sink: l.sink, fields: merge(l.fields, fields)}
}

func (l *lineLogger) Debug(msg string, fields map[string]any) { l.write(Debug, msg, fields) }
func (l *lineLogger) Info(msg string, fields map[string]any)  { l.write(Info, msg, fields) }
func (l *lineLogger) Warn(msg string, fields map[string]any)  { l.write(Warn, msg, fields) }
func (l *lineLogger) Error(msg string, fields map[string]any) { l.write(Error, msg, fields) }

func (l *lineLogger) write(lvl Level, msg string, fields map[string]any) {
	s := l.sink
	if lvl < s.level {
		return
	}

	var buf bytes.Buffer
	s.encode(&buf, record{ts: s.now().UTC(), level: lvl, msg: msg, fields: merge(l.fields, fields)})
	buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(buf.Bytes())
}

func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// encodeText: "<ts> <LEVEL> <msg> k=v ..." con llaves ordenadas.
func encodeText(buf *bytes.Buffer, r record) {
	buf.WriteString(r.ts.Format(time.RFC3339))
	buf.WriteByte(' ')
	buf.WriteString(strings.ToUpper(r.level.String()))
	buf.WriteByte(' ')
	buf.WriteString(r.msg)
	for _, k := range sortedKeys(r.fields) {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(textValue(r.fields[k]))
	}
}

func textValue(v any) string {
	var s string
	switch x := v.(type) {
	case error:
		s = x.Error()
	case string:
		s = x
	default:
		s = fmt.Sprint(x)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func encodeJSON(buf *bytes.Buffer, r record) {
	entry := make(map[string]any, len(r.fields)+3)
	for k, v := range r.fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		entry[k] = v
	}
	entry["ts"] = r.ts.Format(time.RFC3339Nano)
	entry["level"] = r.level.String()
	entry["msg"] = r.msg

	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"ts": entry["ts"], "level": "error", "msg": "log encode failed", "error": err.Error()})
	}
	buf.Write(b)
}
