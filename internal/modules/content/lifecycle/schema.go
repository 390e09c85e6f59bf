package lifecycle

// Field describes one draftable attribute of a content kind: which column
// it lives in and whether it is structured (stored as JSON text and verified
// after publish).
type Field struct {
	Column     string
	Structured bool
}

// Facet is a closed-vocabulary filter. Values outside Allowed are silently
// dropped by the query engine rather than raising an error.
type Facet struct {
	Column  string
	Allowed []string
}

// Schema is the content-kind descriptor that parameterizes the generic
// lifecycle service: one per kind instead of three near-identical
// repository implementations.
type Schema struct {
	// Kind is the short name used in role checks and log fields
	// ("species", "areas", "news").
	Kind string

	// Table is the backing table name.
	Table string

	// DraftFields maps JSON field names accepted in draft patches to their
	// columns. Patch keys outside this set are dropped at draft time.
	DraftFields map[string]Field

	// SearchColumns are matched case-insensitively (substring, OR-joined)
	// by the free-text search filter.
	SearchColumns []string

	// Facets are the kind's allow-listed filters, keyed by query-param name.
	Facets map[string]Facet

	// SortFields maps caller-facing sort names to columns. The default sort
	// is created_at DESC; ties always break by id ASC.
	SortFields map[string]string

	DefaultPageSize int
}
