package excerpt

// ManyToMany is a Jenny that considers all Inputs together and produces any
// number of excerpts.
type ManyToMany[Input any] interface {
	Jenny[Input]

	// Generate produces excerpts for all the Inputs. A nil, nil return means
	// the jenny had nothing to contribute.
	Generate([]Input) ([]Excerpt, error)
}

type m2mAdapt[OriginalInput, AdaptedInput any] struct {
	fn func(AdaptedInput) OriginalInput
	j  ManyToMany[OriginalInput]
}

func (oa *m2mAdapt[OriginalInput, AdaptedInput]) JennyName() string {
	return oa.j.JennyName()
}

func (oa *m2mAdapt[OriginalInput, AdaptedInput]) Generate(ps []AdaptedInput) ([]Excerpt, error) {
	return oa.j.Generate(convertAll(ps, oa.fn))
}

// AdaptManyToMany is [AdaptOneToOne] for ManyToMany jennies.
func AdaptManyToMany[OriginalInput, AdaptedInput any](j ManyToMany[OriginalInput], fn func(AdaptedInput) OriginalInput) ManyToMany[AdaptedInput] {
	return &m2mAdapt[OriginalInput, AdaptedInput]{
		fn: fn,
		j:  j,
	}
}
