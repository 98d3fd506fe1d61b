package pipeline

import (
	"github.com/gridwerk/gridwerk/pkg/grid"
)

// Calc expands grid settings into complete page geometry and typography.
// This is a pure computation; caching and logging live on the Runner.
func Calc(opts Options) (*grid.Result, error) {
	if err := opts.ValidateForCalc(); err != nil {
		return nil, err
	}
	return grid.Generate(opts.GridSettings())
}
