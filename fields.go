package excerpt

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// FieldReceiver accepts the (name, value) pairs an [Excerpt] reports about
// itself.
type FieldReceiver interface {
	Add(name string, value any)
}

// Field is a single reported (name, value) pair.
type Field struct {
	Name  string
	Value any
}

type fieldList []Field

func (fl *fieldList) Add(name string, value any) {
	*fl = append(*fl, Field{Name: name, Value: value})
}

// Fields returns the fields reported by e, in report order.
func Fields(e Excerpt) []Field {
	var fl fieldList
	e.ReportFields(&fl)
	return fl
}

// Equal reports whether a and b are the same kind of excerpt with
// elementwise-equal reported fields. Excerpts nested inside field values are
// compared with Equal as well.
func Equal(a, b Excerpt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	fa, fb := Fields(a), Fields(b)
	if len(fa) != len(fb) {
		return false
	}
	opts := fieldOptions()
	for i := range fa {
		if fa[i].Name != fb[i].Name {
			return false
		}
		if !cmp.Equal(fa[i].Value, fb[i].Value, opts) {
			return false
		}
	}
	return true
}

// fieldOptions is a func rather than a package var, as the comparer refers
// back to Equal.
//
// Leaf values compare by their described text, so that Equal agrees with
// Hash and Describe: 0.0 and -0.0 differ, as do one instant in two zones.
func fieldOptions() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y Excerpt) bool { return Equal(x, y) }),
		cmp.FilterValues(func(x, y any) bool { return isLeaf(x) && isLeaf(y) },
			cmp.Comparer(func(x, y any) bool { return leafText(x) == leafText(y) })),
		cmpopts.EquateEmpty(),
	}
}

// isLeaf reports whether describeValue writes v without recursing into it.
func isLeaf(v any) bool {
	switch v.(type) {
	case nil, Excerpt:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Map:
		// left to cmp, so they never overlap with cmpopts.EquateEmpty
		return false
	case reflect.Array, reflect.Pointer, reflect.Interface:
		_, isStringer := v.(fmt.Stringer)
		return isStringer
	default:
		return true
	}
}

func leafText(v any) string {
	var sb strings.Builder
	describeValue(&sb, v)
	return sb.String()
}

// Hash returns a hash of e consistent with [Equal].
func Hash(e Excerpt) uint64 {
	return xxhash.Sum64String(Describe(e))
}

// Describe returns a textual representation of e: its concrete type followed
// by each reported field, with nested excerpts described recursively.
//
//	excerpt.addExcerpt{fmt: "%s + %s", args: [1, 2]}
func Describe(e Excerpt) string {
	var sb strings.Builder
	describeInto(&sb, e)
	return sb.String()
}

func describeInto(sb *strings.Builder, e Excerpt) {
	if e == nil {
		sb.WriteString("nil")
		return
	}
	sb.WriteString(typeName(e))
	sb.WriteByte('{')
	for i, f := range Fields(e) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		describeValue(sb, f.Value)
	}
	sb.WriteByte('}')
}

func describeValue(sb *strings.Builder, v any) {
	switch tv := v.(type) {
	case nil:
		sb.WriteString("nil")
		return
	case Excerpt:
		describeInto(sb, tv)
		return
	case string:
		sb.WriteString(strconv.Quote(tv))
		return
	case fmt.Stringer:
		sb.WriteString(tv.String())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		sb.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			describeValue(sb, rv.Index(i).Interface())
		}
		sb.WriteByte(']')
	case reflect.Pointer:
		if rv.IsNil() {
			sb.WriteString("nil")
			return
		}
		sb.WriteByte('&')
		describeValue(sb, rv.Elem().Interface())
	default:
		fmt.Fprintf(sb, "%+v", v)
	}
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// textOf is the plain-text form of a value interpolated into generated
// source.
func textOf(v any) string {
	switch tv := v.(type) {
	case Excerpt:
		return Describe(tv)
	case string:
		return tv
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(v)
	}
}
