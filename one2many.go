package excerpt

// OneToMany is a Jenny that produces any number of excerpts per Input,
// typically one [Static] for each member it discovers.
type OneToMany[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and produces its excerpts. A nil, nil return
	// means the jenny had nothing to contribute.
	Generate(Input) ([]Excerpt, error)
}

type o2mAdapt[AdaptedInput, OriginalInput any] struct {
	fn func(AdaptedInput) OriginalInput
	j  OneToMany[OriginalInput]
}

func (oa *o2mAdapt[AdaptedInput, OriginalInput]) JennyName() string {
	return oa.j.JennyName()
}

func (oa *o2mAdapt[AdaptedInput, OriginalInput]) Generate(t AdaptedInput) ([]Excerpt, error) {
	return oa.j.Generate(oa.fn(t))
}

// AdaptOneToMany is [AdaptOneToOne] for OneToMany jennies.
func AdaptOneToMany[AdaptedInput, OriginalInput any](j OneToMany[OriginalInput], fn func(AdaptedInput) OriginalInput) OneToMany[AdaptedInput] {
	return &o2mAdapt[AdaptedInput, OriginalInput]{
		fn: fn,
		j:  j,
	}
}
