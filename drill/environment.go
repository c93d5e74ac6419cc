package drill

// Environment is the execution context threaded through every Reader. It
// carries the active column resolution policy and nothing else.
//
// Environments are immutable and handled by pointer; deriving a new prefix
// never changes the receiver.
type Environment struct {
	resolver *FieldResolver
}

// NewEnvironment wraps resolver
func NewEnvironment(resolver *FieldResolver) *Environment {
	return &Environment{resolver: resolver}
}

// Resolver returns the environment's resolver
func (e *Environment) Resolver() *FieldResolver { return e.resolver }

// Prefix returns the active prefix
func (e *Environment) Prefix() string { return e.resolver.Prefix() }

// WithPrefix returns an environment resolving under value
func (e *Environment) WithPrefix(value string) *Environment {
	return &Environment{resolver: e.resolver.WithPrefix(value)}
}

// ClearPrefix returns an environment resolving without a prefix
func (e *Environment) ClearPrefix() *Environment {
	return &Environment{resolver: e.resolver.ClearPrefix()}
}

// Equal reports whether e and other resolve every name identically, that is
// whether they have the same prefix and the same schema
func (e *Environment) Equal(other *Environment) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	a, b := e.resolver, other.resolver
	if a.prefix != b.prefix {
		return false
	}
	if a.schema == b.schema {
		return true
	}
	if len(a.schema.names) != len(b.schema.names) {
		return false
	}
	for i, name := range a.schema.names {
		if b.schema.names[i] != name {
			return false
		}
	}
	return true
}
