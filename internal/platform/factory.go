package platform

import (
	"github.com/quillhq/inkwell/pkg/core"
	"github.com/quillhq/inkwell/pkg/lint"
)

// svc, err := inkwell.New("./path/to/vault", inkwell.WithVersioning(false))
// The URI argument is adapter-specific (e.g., file path for 'fs', connection string for others).
func New(uri string, opts ...Option) (*core.Service, error) {
	// 1. Initialize environment (Path, Git, Directories)
	// We pass the opts down to Init, which parses them itself.
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to wire the lint checker.
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var checker core.Checker
	if o.lintOnSave {
		checker = lint.New()
	}

	// Initialize Domain Service
	service := core.NewService(repo, checker)

	return service, nil
}
