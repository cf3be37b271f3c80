package excerpt

// OneToOne is a Jenny that produces at most one excerpt per Input.
type OneToOne[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and produces one Excerpt, or nil if the jenny
	// has nothing to contribute for it.
	Generate(Input) (Excerpt, error)
}

type o2oAdapt[AdaptedInput, OriginalInput any] struct {
	fn func(AdaptedInput) OriginalInput
	j  OneToOne[OriginalInput]
}

func (oa *o2oAdapt[AdaptedInput, OriginalInput]) JennyName() string {
	return oa.j.JennyName()
}

func (oa *o2oAdapt[AdaptedInput, OriginalInput]) Generate(t AdaptedInput) (Excerpt, error) {
	return oa.j.Generate(oa.fn(t))
}

// AdaptOneToOne turns a OneToOne jenny over OriginalInput into one over
// AdaptedInput, given a conversion func.
func AdaptOneToOne[AdaptedInput, OriginalInput any](j OneToOne[OriginalInput], fn func(AdaptedInput) OriginalInput) OneToOne[AdaptedInput] {
	return &o2oAdapt[AdaptedInput, OriginalInput]{
		fn: fn,
		j:  j,
	}
}
