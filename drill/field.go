package drill

import "github.com/vegasq/datadrill/query"

// Field is a logical column name. Which physical column it reads is decided
// by the Environment its Reader runs with.
type Field struct {
	Name string
}

// NewField returns the field called name
func NewField(name string) Field {
	return Field{Name: name}
}

// Reader returns a fresh Reader resolving the field through the running
// environment's resolver
func (f Field) Reader() Reader {
	return GetData(f.Name)
}

// GetData returns a Reader resolving name through the running environment's
// resolver
func GetData(name string) Reader {
	return func(env *Environment) (query.Expr, error) {
		column, err := env.Resolver().Resolve(name)
		if err != nil {
			return nil, err
		}
		return query.Col(column), nil
	}
}
