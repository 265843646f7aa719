package mock

import (
	"context"

	"github.com/IvanM-GM/replygen"
)

var _ replygen.Generator = (*Generator)(nil)

// Generator is a mock implementation of replygen.Generator.
type Generator struct {
	GenerateTextFn      func(ctx context.Context, req replygen.GenerateRequest) (string, error)
	ConnectionHealthyFn func(ctx context.Context) bool
	CloseFn             func() error
}

func (g *Generator) GenerateText(ctx context.Context, req replygen.GenerateRequest) (string, error) {
	return g.GenerateTextFn(ctx, req)
}

func (g *Generator) ConnectionHealthy(ctx context.Context) bool {
	return g.ConnectionHealthyFn(ctx)
}

func (g *Generator) Close() error {
	return g.CloseFn()
}
