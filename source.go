package docdive

// Source identifies a documentation website. The set of sources is
// closed: adding a site means adding a constant here plus a Retriever
// implementation, never branching on strings at call sites.
type Source string

// Known documentation sources.
const (
	SourceAppleDocs Source = "apple"
	SourceHWS       Source = "hws"
)

// AllSources returns every known source in stable order. The coordinator
// uses this order when concatenating multi-source results.
func AllSources() []Source {
	return []Source{SourceAppleDocs, SourceHWS}
}

// Valid reports whether s names a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceAppleDocs, SourceHWS:
		return true
	}
	return false
}
