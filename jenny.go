package excerpt

// A Jenny is a generation routine that turns analysis inputs into excerpts.
//
// Each Jenny works with exactly one type of input, given by its type
// parameter, and takes either one or many Inputs, producing zero, one or many
// excerpts. Keeping jennies small, each with one narrow responsibility, is
// what makes them reusable across generators.
//
// Go's generics cannot express the union of the four arities in the
// interface itself, so a Jenny must additionally implement one of
// [OneToOne], [OneToMany], [ManyToOne] or [ManyToMany].
type Jenny[Input any] interface {
	// JennyName returns the name of the generator.
	JennyName() string
}

// NamedJenny is the type-parameter-free part of every [Jenny].
type NamedJenny interface {
	JennyName() string
}

type simpleOneToOne[Input any] struct {
	name string
	fn   func(Input) (Excerpt, error)
}

// SimpleOneToOne wraps fn as a [OneToOne] jenny with the given name.
func SimpleOneToOne[Input any](name string, fn func(Input) (Excerpt, error)) OneToOne[Input] {
	return &simpleOneToOne[Input]{name: name, fn: fn}
}

func (j *simpleOneToOne[Input]) JennyName() string {
	return j.name
}

func (j *simpleOneToOne[Input]) Generate(in Input) (Excerpt, error) {
	return j.fn(in)
}

type simpleOneToMany[Input any] struct {
	name string
	fn   func(Input) ([]Excerpt, error)
}

// SimpleOneToMany wraps fn as a [OneToMany] jenny with the given name.
func SimpleOneToMany[Input any](name string, fn func(Input) ([]Excerpt, error)) OneToMany[Input] {
	return &simpleOneToMany[Input]{name: name, fn: fn}
}

func (j *simpleOneToMany[Input]) JennyName() string {
	return j.name
}

func (j *simpleOneToMany[Input]) Generate(in Input) ([]Excerpt, error) {
	return j.fn(in)
}
