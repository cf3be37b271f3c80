package excerpt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"
)

// ErrDuplicateMember indicates two static excerpts sharing a category and
// name.
var ErrDuplicateMember = errors.New("duplicate static member")

// Category classifies a [Static] excerpt. Categories sort in declaration
// order.
type Category int

const (
	// TypeMember is a nested type, or other type-level member.
	TypeMember Category = iota
	// MethodMember is a method-level member.
	MethodMember
)

func (c Category) String() string {
	switch c {
	case TypeMember:
		return "TYPE"
	case MethodMember:
		return "METHOD"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Static is an excerpt for a named top-level member of a generated artifact.
//
// Statics are placed by their (Category, Name) order rather than by the
// order in which they were produced, so that output is stable even when
// member discovery is not.
type Static interface {
	Excerpt
	Category() Category
	Name() string
}

type staticExcerpt struct {
	category Category
	name     string
	body     Excerpt
}

// NewStatic returns a [Static] excerpt that renders body. A nil body renders
// nothing.
func NewStatic(category Category, name string, body Excerpt) Static {
	if body == nil {
		body = Empty()
	}
	return &staticExcerpt{
		category: category,
		name:     name,
		body:     body,
	}
}

func (e *staticExcerpt) Category() Category { return e.category }

func (e *staticExcerpt) Name() string { return e.name }

func (e *staticExcerpt) Render(b Buffer) error {
	return e.body.Render(b)
}

func (e *staticExcerpt) ReportFields(f FieldReceiver) {
	f.Add("category", e.category)
	f.Add("name", e.name)
	f.Add("body", e.body)
}

func (e *staticExcerpt) String() string { return Describe(e) }

// CompareStatic orders statics by category, then by name. It returns a
// negative number, zero or a positive number as a sorts before, with or
// after b.
func CompareStatic(a, b Static) int {
	if a.Category() != b.Category() {
		if a.Category() < b.Category() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name(), b.Name())
}

// SortStatics sorts s by [CompareStatic] and returns it with duplicates
// removed. s is reordered in place; the result shares its backing array.
//
// Statics that compare equal and are [Equal] denote the same member, such as
// a helper requested by several jennies, and only the first is kept.
// Statics that compare equal but are not Equal collide: each collision is
// reported in the returned error, wrapping [ErrDuplicateMember]. The sorted,
// deduplicated slice is returned either way.
func SortStatics(s []Static) ([]Static, error) {
	slices.SortStableFunc(s, CompareStatic)

	var result *multierror.Error
	out := s[:0]
	for _, st := range s {
		if n := len(out); n > 0 && CompareStatic(out[n-1], st) == 0 {
			if !Equal(out[n-1], st) {
				result = multierror.Append(result, fmt.Errorf("%w: %s %q", ErrDuplicateMember, st.Category(), st.Name()))
			}
			continue
		}
		out = append(out, st)
	}
	return out, result.ErrorOrNil()
}

type membersExcerpt struct{}

var membersAnchor = &membersExcerpt{}

// StaticMembers returns the excerpt marking where a [JennyList] renders its
// sorted statics, e.g. between a class's opening and closing braces. Only a
// marker produced directly by a jenny is recognised, and only the first one;
// without a marker, statics follow all other excerpts. Rendered on its own,
// it writes nothing.
func StaticMembers() Excerpt {
	return membersAnchor
}

func (*membersExcerpt) Render(Buffer) error { return nil }

func (*membersExcerpt) ReportFields(FieldReceiver) {}

func (e *membersExcerpt) String() string { return Describe(e) }
