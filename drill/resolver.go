package drill

import (
	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds how far a schema column may be from a failed
// lookup and still be offered as a suggestion
const maxSuggestionDistance = 3

// schema is the ordered set of physical column names shared by every
// resolver derived from the same root
type schema struct {
	names []string
	index map[string]struct{}
}

// FieldResolver maps logical field names to physical columns by prepending
// its prefix and checking the result against a known schema.
//
// A FieldResolver is immutable. WithPrefix and ClearPrefix return new
// resolvers that share the receiver's schema.
type FieldResolver struct {
	schema *schema
	prefix string
}

// NewFieldResolver returns a resolver over columns with an empty prefix. The
// column list is copied once; later changes to the caller's slice have no
// effect.
func NewFieldResolver(columns []string) *FieldResolver {
	s := &schema{
		names: make([]string, 0, len(columns)),
		index: make(map[string]struct{}, len(columns)),
	}
	for _, c := range columns {
		if _, dup := s.index[c]; dup {
			continue
		}
		s.index[c] = struct{}{}
		s.names = append(s.names, c)
	}
	return &FieldResolver{schema: s}
}

// WithPrefix returns a resolver with the same schema and prefix value
func (r *FieldResolver) WithPrefix(value string) *FieldResolver {
	return &FieldResolver{schema: r.schema, prefix: value}
}

// ClearPrefix is WithPrefix("")
func (r *FieldResolver) ClearPrefix() *FieldResolver {
	return r.WithPrefix("")
}

// Prefix returns the active prefix
func (r *FieldResolver) Prefix() string { return r.prefix }

// Schema returns a copy of the known column names, in order
func (r *FieldResolver) Schema() []string {
	out := make([]string, len(r.schema.names))
	copy(out, r.schema.names)
	return out
}

// Has reports whether column is a known physical column
func (r *FieldResolver) Has(column string) bool {
	_, ok := r.schema.index[column]
	return ok
}

// Resolve returns prefix+name if that column exists. There is no fallback to
// the unprefixed name and no case folding.
func (r *FieldResolver) Resolve(name string) (string, error) {
	column := r.prefix + name
	if r.Has(column) {
		return column, nil
	}
	return "", &UnknownColumnError{
		Name:       name,
		Prefix:     r.prefix,
		Suggestion: r.suggest(column),
	}
}

// suggest returns the schema column closest to column, or "" when none is
// close enough. Ties go to the earlier column.
func (r *FieldResolver) suggest(column string) string {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, name := range r.schema.names {
		if d := levenshtein.ComputeDistance(column, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}
