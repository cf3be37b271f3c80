package excerpt

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
)

func TestEqualAcrossCallSites(t *testing.T) {
	is := is.New(t)

	build := func() Excerpt { return Add("%s = %s;", "x", 42) }
	a, b := build(), Add("%s = %s;", "x", 42)

	is.True(a != b) // distinct values
	is.True(Equal(a, b))
	is.Equal(Hash(a), Hash(b))
	is.Equal(Describe(a), Describe(b))
}

func TestEqualDistinguishesFields(t *testing.T) {
	is := is.New(t)

	is.True(!Equal(Add("%s", 1), Add("%s", 2)))
	is.True(!Equal(Add("%s", 1), Add("%s;", 1)))
	is.True(!Equal(Add("a"), Add("a", "b")))
	is.True(!Equal(Join(",", "a"), Join(";", "a")))
}

func TestEqualDistinguishesVariants(t *testing.T) {
	is := is.New(t)

	// Both report a single string field, under different names.
	is.True(!Equal(Generated("a.B"), NewStatic(TypeMember, "a.B", nil)))
	is.True(!Equal(Empty(), Add("")))
	is.True(!Equal(Empty(), nil))
	is.True(Equal(nil, nil))
}

func TestEqualNested(t *testing.T) {
	is := is.New(t)

	a := Add("return %s;", Join(" + ", Add("x"), Add("y")))
	b := Add("return %s;", Join(" + ", Add("x"), Add("y")))
	c := Add("return %s;", Join(" + ", Add("x"), Add("z")))

	is.True(Equal(a, b))
	is.Equal(Hash(a), Hash(b))
	is.True(!Equal(a, c))

	sa := NewStatic(MethodMember, "m", a)
	sb := NewStatic(MethodMember, "m", b)
	is.True(Equal(sa, sb))
	is.True(!Equal(sa, NewStatic(MethodMember, "m", c)))
}

func TestEqualAgreesWithHash(t *testing.T) {
	negzero := math.Copysign(0, -1)
	instant := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tt := []struct {
		name string
		a, b Excerpt
		eq   bool
	}{
		{name: "signed zero", a: Add("%s", 0.0), b: Add("%s", negzero)},
		{name: "float32 signed zero", a: Add("%s", float32(0)), b: Add("%s", float32(negzero))},
		{name: "NaN", a: Add("%s", math.NaN()), b: Add("%s", math.NaN()), eq: true},
		{name: "same instant, other zone", a: Add("%s", instant), b: Add("%s", instant.In(time.FixedZone("X", 3600)))},
		{name: "same instant", a: Add("%s", instant), b: Add("%s", instant), eq: true},
		{name: "nested", a: Join(",", Add("%s", 0.0)), b: Join(",", Add("%s", negzero))},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(Equal(tc.a, tc.b), tc.eq)
			is.Equal(Hash(tc.a) == Hash(tc.b), tc.eq)
			is.Equal(render(t, nil, tc.a) == render(t, nil, tc.b), tc.eq)
		})
	}
}

func TestFieldsOrder(t *testing.T) {
	want := []Field{
		{Name: "separator", Value: ", "},
		{Name: "excerpts", Value: []any{"a", "b"}},
	}
	if d := cmp.Diff(want, Fields(Join(", ", "a", "b"))); d != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", d)
	}

	if n := len(Fields(Empty())); n != 0 {
		t.Fatalf("expected no fields for Empty, got %d", n)
	}
}

func TestDescribe(t *testing.T) {
	tt := []struct {
		name string
		e    Excerpt
		want string
	}{
		{
			name: "add",
			e:    Add("%s + %s", 1, 2),
			want: `excerpt.addExcerpt{fmt: "%s + %s", args: [1, 2]}`,
		},
		{
			name: "add no args",
			e:    Add("x"),
			want: `excerpt.addExcerpt{fmt: "x", args: []}`,
		},
		{
			name: "empty",
			e:    Empty(),
			want: `excerpt.emptyExcerpt{}`,
		},
		{
			name: "generated",
			e:    Generated("com.example.Gen"),
			want: `excerpt.generatedExcerpt{generator: "com.example.Gen"}`,
		},
		{
			name: "join nested",
			e:    Join(",", "a", Add("b")),
			want: `excerpt.joinExcerpt{separator: ",", excerpts: ["a", excerpt.addExcerpt{fmt: "b", args: []}]}`,
		},
		{
			name: "static",
			e:    NewStatic(TypeMember, "Builder", nil),
			want: `excerpt.staticExcerpt{category: TYPE, name: "Builder", body: excerpt.emptyExcerpt{}}`,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(Describe(tc.e), tc.want)
			is.Equal(tc.e.(interface{ String() string }).String(), tc.want)
		})
	}
}

type userExcerpt struct {
	text string
}

func (e userExcerpt) Render(b Buffer) error { return b.Add("%s", e.text) }

func (e userExcerpt) ReportFields(f FieldReceiver) { f.Add("text", e.text) }

func TestUserDefinedExcerpt(t *testing.T) {
	is := is.New(t)

	a, b := userExcerpt{text: "x"}, userExcerpt{text: "x"}
	is.True(Equal(a, b))
	is.Equal(Hash(a), Hash(b))
	is.Equal(Describe(a), `excerpt.userExcerpt{text: "x"}`)
	is.True(!Equal(a, userExcerpt{text: "y"}))
}
