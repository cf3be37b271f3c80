package excerpt

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestSourceBuilderAdd(t *testing.T) {
	tt := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "literal", format: "class A {}", want: "class A {}"},
		{name: "positional", format: "%s(%s)", args: []any{"f", 3}, want: "f(3)"},
		{name: "percent", format: "100%% %s", args: []any{"done"}, want: "100% done"},
		{name: "stringer", format: "%s", args: []any{MethodMember}, want: "METHOD"},
		{name: "excerpt arg", format: "{%s}", args: []any{Add("%s;", "x")}, want: "{x;}"},
		{name: "empty arg", format: "[%s]", args: []any{Empty()}, want: "[]"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			sb := NewSourceBuilder(nil)
			is.NoErr(sb.Add(tc.format, tc.args...))
			is.Equal(sb.String(), tc.want)
		})
	}
}

func TestSourceBuilderFormatErrors(t *testing.T) {
	tt := []struct {
		name   string
		format string
		args   []any
	}{
		{name: "too few args", format: "%s %s", args: []any{1}},
		{name: "too many args", format: "%s", args: []any{1, 2}},
		{name: "unsupported verb", format: "%d", args: []any{1}},
		{name: "trailing percent", format: "50%"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			sb := NewSourceBuilder(nil)
			err := sb.Add(tc.format, tc.args...)
			is.True(errors.Is(err, ErrFormat))
			is.Equal(sb.Len(), 0) // nothing written
		})
	}
}

func TestSourceBuilderAddLine(t *testing.T) {
	is := is.New(t)

	sb := NewSourceBuilder(nil)
	is.NoErr(sb.AddLine("package %s", "p"))
	is.NoErr(sb.AddLine(""))
	is.Equal(sb.String(), "package p\n\n")
	is.Equal(string(sb.Bytes()), sb.String())

	sb.Reset()
	is.Equal(sb.Len(), 0)
	is.True(sb.AddLine("%s") != nil)
	is.Equal(sb.Len(), 0)
}

func TestSourceBuilderFeature(t *testing.T) {
	is := is.New(t)

	sb := NewSourceBuilder(Environment{GeneratedAnnotation: "G"})
	v, ok := sb.Feature(GeneratedAnnotation).Get()
	is.True(ok)
	is.Equal(v, "G")

	_, ok = sb.Feature("other").Get()
	is.True(!ok)

	sb.Reset()
	_, ok = sb.Feature(GeneratedAnnotation).Get()
	is.True(ok) // environment survives Reset
}
