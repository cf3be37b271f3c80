// Package excerpt builds generated source text out of small, immutable
// fragments called excerpts.
//
// An Excerpt knows how to render itself into a [Buffer]. Excerpts never
// carry their own equality, hashing or debug formatting: each one reports
// the state it captured at construction through [Excerpt.ReportFields], and
// [Equal], [Hash] and [Describe] are derived from that report. Two excerpts
// built at different call sites from the same arguments are therefore
// interchangeable, both in caches and in test assertions.
//
// Jennies turn analysis inputs into excerpts, and a [JennyList] renders the
// excerpts produced by its jennies into a single [File].
package excerpt

// An Excerpt is an immutable fragment of generated source text.
//
// Implementations must not change after construction, so that a single
// Excerpt may be shared freely across generation passes.
type Excerpt interface {
	// Render writes the excerpt's contribution to the buffer. Calling Render
	// repeatedly against equivalent buffers produces identical output.
	Render(Buffer) error

	// ReportFields passes each piece of constructor-captured state to the
	// receiver, always in the same order.
	ReportFields(FieldReceiver)
}

// Buffer is the sequential output sink that excerpts render into.
//
// The only placeholder a Buffer is required to understand is %s, matched
// left to right against args. A mismatch between placeholders and args is
// reported as an error wrapping [ErrFormat].
type Buffer interface {
	// Add writes format with args substituted.
	Add(format string, args ...any) error

	// AddLine is like Add, followed by a line break.
	AddLine(format string, args ...any) error

	// Feature reports whether an optional platform capability is available
	// in the environment being generated for.
	Feature(key FeatureKey) Capability
}
