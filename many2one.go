package excerpt

// ManyToOne is a Jenny that considers all Inputs together and produces at
// most one excerpt, such as a header listing every input.
type ManyToOne[Input any] interface {
	Jenny[Input]

	// Generate produces one Excerpt for all the Inputs, or nil if the jenny
	// has nothing to contribute.
	Generate(...Input) (Excerpt, error)
}

type m2oAdapt[OriginalInput, AdaptedInput any] struct {
	fn func(AdaptedInput) OriginalInput
	g  ManyToOne[OriginalInput]
}

func (oa *m2oAdapt[OriginalInput, AdaptedInput]) JennyName() string {
	return oa.g.JennyName()
}

func (oa *m2oAdapt[OriginalInput, AdaptedInput]) Generate(ps ...AdaptedInput) (Excerpt, error) {
	return oa.g.Generate(convertAll(ps, oa.fn)...)
}

// AdaptManyToOne is [AdaptOneToOne] for ManyToOne jennies.
func AdaptManyToOne[OriginalInput, AdaptedInput any](g ManyToOne[OriginalInput], fn func(AdaptedInput) OriginalInput) ManyToOne[AdaptedInput] {
	return &m2oAdapt[OriginalInput, AdaptedInput]{
		fn: fn,
		g:  g,
	}
}

func convertAll[P, Q any](ps []P, fn func(P) Q) []Q {
	qs := make([]Q, len(ps))
	for i, p := range ps {
		qs[i] = fn(p)
	}
	return qs
}
