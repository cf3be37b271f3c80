package excerpt

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// JennyList is an ordered collection of jennies whose excerpts are rendered
// together into one artifact.
//
// Excerpts are rendered in the order they were produced: jennies in append
// order, and for each per-input jenny, inputs in the order given. [Static]
// excerpts are the exception. They are set aside, sorted and deduplicated
// with [SortStatics], and rendered at the first [StaticMembers] marker, or
// after everything else if there is none, so their placement does not
// depend on discovery order.
//
// JennyList's Input type parameter enforces that every Jenny in the list
// takes the same type of input.
type JennyList[Input any] struct {
	mut sync.RWMutex

	jennies []NamedJenny

	// postprocessors, run on every file produced by GenerateFile
	post []FileMapper

	env Environment

	// inputnamer, if non-nil, gives a name to an input.
	inputnamer func(t Input) string

	logger *slog.Logger
}

// NewJennyList creates an empty JennyList that renders for env.
func NewJennyList[Input any](env Environment) *JennyList[Input] {
	return &JennyList[Input]{
		env:    env,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// JennyListWithNamer is like [NewJennyList], and decorates errors using
// namer, which derives a meaningful identifier string from an Input.
func JennyListWithNamer[Input any](env Environment, namer func(t Input) string) *JennyList[Input] {
	jl := NewJennyList[Input](env)
	jl.inputnamer = namer
	return jl
}

// SetLogger sets the logger that receives debug records about each
// generation pass.
func (jl *JennyList[Input]) SetLogger(l *slog.Logger) {
	jl.mut.Lock()
	jl.logger = l
	jl.mut.Unlock()
}

func (jl *JennyList[Input]) JennyName() string {
	return fmt.Sprintf("JennyList[%s]", reflect.TypeOf(new(Input)).Elem().Name())
}

func (jl *JennyList[Input]) wrapinerr(in Input, err error) error {
	if jl.inputnamer == nil {
		return err
	}
	return fmt.Errorf("%w for input %q", err, jl.inputnamer(in))
}

// Append adds Jennies to the end of the JennyList.
//
// All provided jennies must also implement one of [OneToOne], [OneToMany],
// [ManyToOne] or [ManyToMany], or this method will panic. For proper type
// safety, use the Append* methods.
func (jl *JennyList[Input]) Append(jennies ...Jenny[Input]) {
	nl := make([]NamedJenny, len(jennies))
	for i, j := range jennies {
		switch j.(type) {
		case OneToOne[Input], OneToMany[Input], ManyToOne[Input], ManyToMany[Input]:
			nl[i] = j
		default:
			panic(fmt.Sprintf("%T is not a valid Jenny, must implement (OneToOne | OneToMany | ManyToOne | ManyToMany)", j))
		}
	}
	jl.append(nl...)
}

// AppendOneToOne is like [JennyList.Append], but typesafe for OneToOne jennies.
func (jl *JennyList[Input]) AppendOneToOne(jennies ...OneToOne[Input]) {
	jl.append(tonamed(jennies)...)
}

// AppendOneToMany is like [JennyList.Append], but typesafe for OneToMany jennies.
func (jl *JennyList[Input]) AppendOneToMany(jennies ...OneToMany[Input]) {
	jl.append(tonamed(jennies)...)
}

// AppendManyToOne is like [JennyList.Append], but typesafe for ManyToOne jennies.
func (jl *JennyList[Input]) AppendManyToOne(jennies ...ManyToOne[Input]) {
	jl.append(tonamed(jennies)...)
}

// AppendManyToMany is like [JennyList.Append], but typesafe for ManyToMany jennies.
func (jl *JennyList[Input]) AppendManyToMany(jennies ...ManyToMany[Input]) {
	jl.append(tonamed(jennies)...)
}

func (jl *JennyList[Input]) append(nl ...NamedJenny) {
	jl.mut.Lock()
	jl.jennies = append(jl.jennies, nl...)
	jl.mut.Unlock()
}

func tonamed[J NamedJenny](jennies []J) []NamedJenny {
	nl := make([]NamedJenny, len(jennies))
	for i, j := range jennies {
		nl[i] = j
	}
	return nl
}

// AddPostprocessors appends to the list of postprocessors. Postprocessors
// are run (FIFO) on every File produced by [JennyList.GenerateFile].
func (jl *JennyList[Input]) AddPostprocessors(fn ...FileMapper) {
	jl.mut.Lock()
	jl.post = append(jl.post, fn...)
	jl.mut.Unlock()
}

type produced struct {
	e    Excerpt
	from NamedJenny
}

// pass is the state of a single generation pass.
type pass struct {
	body    []produced
	statics []Static
	from    []NamedJenny
	seen    map[int]bool
}

func (p *pass) collect(idx int, j NamedJenny, es ...Excerpt) int {
	n := 0
	for _, e := range es {
		if e == nil {
			continue
		}
		if s, ok := e.(Static); ok {
			p.statics = append(p.statics, s)
		} else {
			p.body = append(p.body, produced{e: e, from: j})
		}
		n++
	}
	if n > 0 && !p.seen[idx] {
		p.seen[idx] = true
		p.from = append(p.from, j)
	}
	return n
}

// Render runs every jenny against objs and renders the resulting excerpts.
//
// Errors from all jennies are collected and returned together. Any error
// means nothing is returned: a failed pass never yields partial output.
func (jl *JennyList[Input]) Render(objs []Input) ([]byte, error) {
	b, _, err := jl.render(objs)
	return b, err
}

func (jl *JennyList[Input]) render(objs []Input) ([]byte, []NamedJenny, error) {
	jl.mut.RLock()
	defer jl.mut.RUnlock()

	p := &pass{seen: make(map[int]bool)}
	result := new(multierror.Error)
	fail := func(j NamedJenny, err error) error {
		return fmt.Errorf("%s: %w", j.JennyName(), err)
	}

	for idx, jn := range jl.jennies {
		n := 0
		switch jenny := jn.(type) {
		case OneToOne[Input]:
			for _, obj := range objs {
				e, err := jenny.Generate(obj)
				if err != nil {
					result = multierror.Append(result, jl.wrapinerr(obj, fail(jenny, err)))
					continue
				}
				n += p.collect(idx, jenny, e)
			}
		case OneToMany[Input]:
			for _, obj := range objs {
				es, err := jenny.Generate(obj)
				if err != nil {
					result = multierror.Append(result, jl.wrapinerr(obj, fail(jenny, err)))
					continue
				}
				n += p.collect(idx, jenny, es...)
			}
		case ManyToOne[Input]:
			e, err := jenny.Generate(objs...)
			if err != nil {
				result = multierror.Append(result, fail(jenny, err))
				break
			}
			n += p.collect(idx, jenny, e)
		case ManyToMany[Input]:
			es, err := jenny.Generate(objs)
			if err != nil {
				result = multierror.Append(result, fail(jenny, err))
				break
			}
			n += p.collect(idx, jenny, es...)
		default:
			panic("unreachable")
		}
		jl.logger.Debug("jenny produced excerpts", slog.String("jenny", jn.JennyName()), slog.Int("excerpts", n))
	}

	if result.ErrorOrNil() != nil {
		err := multierror.Flatten(result)
		jl.logger.Debug("generation pass failed", slog.String("error", err.Error()))
		return nil, nil, err
	}

	statics, err := SortStatics(p.statics)
	if err != nil {
		return nil, nil, fmt.Errorf("static members collide: %w", err)
	}

	sb := NewSourceBuilder(jl.env)
	placed := false
	renderStatics := func() error {
		placed = true
		for _, s := range statics {
			if err := s.Render(sb); err != nil {
				return fmt.Errorf("render of %s %q failed: %w", s.Category(), s.Name(), err)
			}
		}
		return nil
	}
	for _, pr := range p.body {
		if _, isAnchor := pr.e.(*membersExcerpt); isAnchor && !placed {
			if err := renderStatics(); err != nil {
				return nil, nil, err
			}
			continue
		}
		if err := pr.e.Render(sb); err != nil {
			return nil, nil, fmt.Errorf("%s: render failed: %w", pr.from.JennyName(), err)
		}
	}
	if !placed {
		if err := renderStatics(); err != nil {
			return nil, nil, err
		}
	}

	jl.logger.Debug("generation pass complete",
		slog.String("list", jl.JennyName()),
		slog.Int("excerpts", len(p.body)),
		slog.Int("statics", len(statics)),
		slog.Int("bytes", sb.Len()))
	return sb.Bytes(), p.from, nil
}

// GenerateFile renders objs into a File at path, then runs postprocessors
// on it. A nil, nil return means the list contains no jennies.
func (jl *JennyList[Input]) GenerateFile(path string, objs []Input) (*File, error) {
	if jl.empty() {
		return nil, nil
	}

	data, from, err := jl.render(objs)
	if err != nil {
		return nil, err
	}
	f := File{
		RelativePath: path,
		Data:         data,
		From:         from,
	}
	if err := (Files{f}).Validate(); err != nil {
		return nil, err
	}

	jl.mut.RLock()
	post := jl.post
	jl.mut.RUnlock()
	for _, fn := range post {
		of, err := fn(f)
		if err != nil {
			return nil, fmt.Errorf("postprocessing of %s from %s failed: %w", f.RelativePath, jennystack(f.From), err)
		}
		f = of
	}
	return &f, nil
}

// GenerateEach renders one File per input, at the path returned by pathfor,
// and collects them into an FS. Failures for every input are reported
// together.
func (jl *JennyList[Input]) GenerateEach(pathfor func(Input) string, objs []Input) (*FS, error) {
	fs := NewFS()
	result := new(multierror.Error)
	for _, obj := range objs {
		f, err := jl.GenerateFile(pathfor(obj), []Input{obj})
		if err == nil && f != nil {
			err = fs.Add(*f)
		}
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result.ErrorOrNil() != nil {
		return nil, multierror.Flatten(result)
	}
	return fs, nil
}

func (jl *JennyList[Input]) empty() bool {
	jl.mut.RLock()
	defer jl.mut.RUnlock()
	return len(jl.jennies) == 0
}
