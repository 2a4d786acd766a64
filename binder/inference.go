package binder

import (
	"fmt"
	"sync"

	"ctor-binder/internal/analyze"
)

// NameInferrer recovers the parameter names of a constructor.
type NameInferrer interface {
	NamesFor(c Constructor) ([]string, error)
}

// NameInferrerFunc adapts a function to NameInferrer.
type NameInferrerFunc func(c Constructor) ([]string, error)

func (f NameInferrerFunc) NamesFor(c Constructor) ([]string, error) { return f(c) }

var defaultSource = sync.OnceValue(func() NameInferrer {
	return sourceInferrer{resolver: analyze.NewParamResolver("", nil)}
})

// SourceInferrer returns the shared inferrer that reads parameter names from
// Go source with go/packages. It needs the module source and the go toolchain
// at run time, and fails for closures, methods and parameters named "_".
func SourceInferrer() NameInferrer {
	return defaultSource()
}

// NewSourceInferrer returns an inferrer with its own cache that loads packages
// from dir.
func NewSourceInferrer(dir string) NameInferrer {
	return sourceInferrer{resolver: analyze.NewParamResolver(dir, nil)}
}

type sourceInferrer struct {
	resolver *analyze.ParamResolver
}

func (s sourceInferrer) NamesFor(c Constructor) ([]string, error) {
	names, err := s.resolver.ParamNames(c.Name())
	if err != nil {
		return nil, err
	}

	if len(names) != c.NumParams() {
		return nil, fmt.Errorf("source declares %d parameters for %s, want %d", len(names), c.QualifiedName(), c.NumParams())
	}

	return names, nil
}
