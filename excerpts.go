package excerpt

import (
	"reflect"
)

type addExcerpt struct {
	format string
	args   []any
}

// Add returns an excerpt that writes format with args substituted, as
// [Buffer.Add] does. Excerpts among args are rendered in place by the buffer.
//
// Checking format against args is left to the buffer at render time.
func Add(format string, args ...any) Excerpt {
	return &addExcerpt{
		format: format,
		args:   append([]any(nil), args...),
	}
}

func (e *addExcerpt) Render(b Buffer) error {
	return b.Add(e.format, e.args...)
}

func (e *addExcerpt) ReportFields(f FieldReceiver) {
	f.Add("fmt", e.format)
	f.Add("args", e.args)
}

func (e *addExcerpt) String() string { return Describe(e) }

type emptyExcerpt struct{}

var empty = &emptyExcerpt{}

// Empty returns the excerpt that renders nothing. It is the identity element
// of composition: [Join] drops it, and rendering it leaves a buffer
// untouched.
func Empty() Excerpt {
	return empty
}

func (*emptyExcerpt) Render(Buffer) error { return nil }

func (*emptyExcerpt) ReportFields(FieldReceiver) {}

func (e *emptyExcerpt) String() string { return Describe(e) }

type generatedExcerpt struct {
	generator string
}

// Generated returns an excerpt of the provenance annotation, with its value
// set to the fully qualified name of owner.
//
// owner may be a string, used verbatim, a [reflect.Type], or any other value,
// whose dynamic type is used. The annotation is only rendered when the
// buffer reports the [GeneratedAnnotation] feature; otherwise the excerpt
// renders nothing.
//
// Generated panics if owner is nil.
func Generated(owner any) Excerpt {
	return &generatedExcerpt{
		generator: qualifiedName(owner),
	}
}

func (e *generatedExcerpt) Render(b Buffer) error {
	return b.Feature(GeneratedAnnotation).IfPresent(func(marker string) error {
		return b.AddLine("@%s(\"%s\")", marker, e.generator)
	})
}

func (e *generatedExcerpt) ReportFields(f FieldReceiver) {
	f.Add("generator", e.generator)
}

func (e *generatedExcerpt) String() string { return Describe(e) }

func qualifiedName(owner any) string {
	switch o := owner.(type) {
	case nil:
		panic("excerpt: Generated called with nil owner")
	case string:
		return o
	case reflect.Type:
		return qualifiedTypeName(o)
	default:
		return qualifiedTypeName(reflect.TypeOf(owner))
	}
}

func qualifiedTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

type joinExcerpt struct {
	separator string
	excerpts  []any
}

// Join returns an excerpt writing the textual form of each part, with sep
// between consecutive parts. A part that is itself an Excerpt contributes its
// [Describe] text; it is not rendered.
//
// parts is copied, and [Empty] parts are dropped, when Join is called.
func Join(sep string, parts ...any) Excerpt {
	return JoinSlice(sep, parts)
}

// JoinSlice is like [Join], taking parts as a typed slice.
func JoinSlice[T any](sep string, parts []T) Excerpt {
	snap := make([]any, 0, len(parts))
	for _, p := range parts {
		if _, isEmpty := any(p).(*emptyExcerpt); isEmpty {
			continue
		}
		snap = append(snap, p)
	}
	return &joinExcerpt{
		separator: sep,
		excerpts:  snap,
	}
}

func (e *joinExcerpt) Render(b Buffer) error {
	prefix := ""
	for _, p := range e.excerpts {
		if err := b.Add("%s%s", prefix, textOf(p)); err != nil {
			return err
		}
		prefix = e.separator
	}
	return nil
}

func (e *joinExcerpt) ReportFields(f FieldReceiver) {
	f.Add("separator", e.separator)
	f.Add("excerpts", e.excerpts)
}

func (e *joinExcerpt) String() string { return Describe(e) }
