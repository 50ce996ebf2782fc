// Package encode serializes models and raw stores to JSON (and YAML
// for inspection).  It is the only supported serialization path for a
// Model: encoding/json fails on one, since nested models, byte
// sequences, decimals and the null sentinel need store-aware handling.
package encode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/wiremodel/wiremodel-go/raw"
)

type state struct {
	buf    bytes.Buffer
	indent int
	depth  int
	colors *Colors
}

// Option configures the encoder.
type Option func(*state)

// Indent switches to multi-line output with n spaces per level.
func Indent(n int) Option {
	return func(s *state) { s.indent = n }
}

// WithColors enables colorized output for terminal display.  The
// result is no longer valid JSON bytes.
func WithColors(c *Colors) Option {
	return func(s *state) { s.colors = c }
}

// JSON serializes v: a *model.Model (via its raw store), a *raw.Map,
// or any JSON-safe value.  Nested models are unwrapped recursively;
// key order follows the raw store.
func JSON(v any, opts ...Option) ([]byte, error) {
	s := &state{}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.value(v); err != nil {
		return nil, err
	}
	return s.buf.Bytes(), nil
}

func (s *state) value(v any) error {
	if raw.IsNull(v) {
		s.token(s.color().Null, "null")
		return nil
	}
	switch t := v.(type) {
	case raw.Unwrapper:
		return s.value(t.RawMap())
	case *raw.Map:
		return s.object(t)
	case []any:
		return s.array(t)
	case string:
		return s.str(t)
	case json.Number:
		s.token(s.color().Number, string(t))
		return nil
	case bool:
		if t {
			s.token(s.color().Bool, "true")
		} else {
			s.token(s.color().Bool, "false")
		}
		return nil
	case []byte:
		return s.str(base64.StdEncoding.EncodeToString(t))
	case time.Time:
		return s.str(t.Format(time.RFC3339Nano))
	case *apd.Decimal:
		s.token(s.color().Number, t.Text('f'))
		return nil
	case apd.Decimal:
		s.token(s.color().Number, t.Text('f'))
		return nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		d, err := json.Marshal(t)
		if err != nil {
			return err
		}
		s.token(s.color().Number, string(d))
		return nil
	case map[string]any:
		return s.object(raw.FromGoMap(t))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func (s *state) object(m *raw.Map) error {
	s.token(s.color().Punct, "{")
	s.depth++
	first := true
	var err error
	m.Range(func(k string, v any) bool {
		if !first {
			s.token(s.color().Punct, ",")
		}
		first = false
		s.newline()
		if err = s.key(k); err != nil {
			return false
		}
		err = s.value(v)
		return err == nil
	})
	if err != nil {
		return err
	}
	s.depth--
	if !first {
		s.newline()
	}
	s.token(s.color().Punct, "}")
	return nil
}

func (s *state) array(vs []any) error {
	s.token(s.color().Punct, "[")
	s.depth++
	for i, v := range vs {
		if i > 0 {
			s.token(s.color().Punct, ",")
		}
		s.newline()
		if err := s.value(v); err != nil {
			return err
		}
	}
	s.depth--
	if len(vs) > 0 {
		s.newline()
	}
	s.token(s.color().Punct, "]")
	return nil
}

func (s *state) key(k string) error {
	d, err := json.Marshal(k)
	if err != nil {
		return err
	}
	s.token(s.color().Field, string(d))
	s.token(s.color().Punct, ":")
	if s.indent > 0 {
		s.buf.WriteByte(' ')
	}
	return nil
}

func (s *state) str(v string) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.token(s.color().String, string(d))
	return nil
}

func (s *state) token(paint func(format string, a ...any) string, text string) {
	if paint != nil {
		text = paint("%s", text)
	}
	s.buf.WriteString(text)
}

func (s *state) newline() {
	if s.indent == 0 {
		return
	}
	s.buf.WriteByte('\n')
	s.buf.WriteString(strings.Repeat(" ", s.indent*s.depth))
}

func (s *state) color() *Colors {
	if s.colors == nil {
		return noColors
	}
	return s.colors
}
