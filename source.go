package excerpt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat indicates a format template that does not match its arguments.
var ErrFormat = errors.New("malformed format template")

// SourceBuilder is an in-memory [Buffer].
//
// Templates use %s as a positional placeholder and %% for a literal percent
// sign. An [Excerpt] passed as an argument is rendered in place; any other
// argument is written using its String method, or default formatting.
//
// A SourceBuilder must not be used by more than one generation pass at a
// time.
type SourceBuilder struct {
	env Environment
	sb  strings.Builder
}

// NewSourceBuilder creates an empty SourceBuilder that answers feature
// queries from env.
func NewSourceBuilder(env Environment) *SourceBuilder {
	return &SourceBuilder{env: env}
}

// Add implements [Buffer]. A template/argument mismatch is reported before
// anything is written.
func (s *SourceBuilder) Add(format string, args ...any) error {
	segs, err := splitFormat(format)
	if err != nil {
		return err
	}
	if len(segs)-1 != len(args) {
		return fmt.Errorf("%w: %q has %d placeholders, got %d args", ErrFormat, format, len(segs)-1, len(args))
	}

	for i, seg := range segs {
		s.sb.WriteString(seg)
		if i == len(args) {
			break
		}
		if e, ok := args[i].(Excerpt); ok {
			if err := e.Render(s); err != nil {
				return err
			}
			continue
		}
		s.sb.WriteString(textOf(args[i]))
	}
	return nil
}

// AddLine implements [Buffer].
func (s *SourceBuilder) AddLine(format string, args ...any) error {
	if err := s.Add(format, args...); err != nil {
		return err
	}
	s.sb.WriteByte('\n')
	return nil
}

// Feature implements [Buffer].
func (s *SourceBuilder) Feature(key FeatureKey) Capability {
	return s.env.Feature(key)
}

// String returns the accumulated source.
func (s *SourceBuilder) String() string {
	return s.sb.String()
}

// Bytes returns a copy of the accumulated source.
func (s *SourceBuilder) Bytes() []byte {
	return []byte(s.sb.String())
}

// Len returns the number of accumulated bytes.
func (s *SourceBuilder) Len() int {
	return s.sb.Len()
}

// Reset discards the accumulated source. The environment is kept.
func (s *SourceBuilder) Reset() {
	s.sb.Reset()
}

// splitFormat returns the literal text between placeholders, so a template
// with n placeholders yields n+1 segments.
func splitFormat(format string) ([]string, error) {
	var segs []string
	var cur strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			cur.WriteByte(c)
			continue
		}
		if i+1 == len(format) {
			return nil, fmt.Errorf("%w: trailing %% in %q", ErrFormat, format)
		}
		i++
		switch format[i] {
		case '%':
			cur.WriteByte('%')
		case 's':
			segs = append(segs, cur.String())
			cur.Reset()
		default:
			return nil, fmt.Errorf("%w: unsupported verb %%%c in %q", ErrFormat, format[i], format)
		}
	}
	return append(segs, cur.String()), nil
}
