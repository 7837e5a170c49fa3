package abi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/optpack/optpack/solver"
)

// ModuleName is the import namespace guests use for the solver contract.
const ModuleName = "env"

// Instantiate builds the host module exporting knapsack and
// knapsack_greedy into the given runtime. The returned closer tears the
// module down; closing the runtime also suffices.
func Instantiate(ctx context.Context, rt wazero.Runtime) (api.Closer, error) {
	return rt.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, m api.Module, n, weightsPtr, valuesPtr, capacity, selectionPtr int32) int32 {
			return call(m.Memory(), solver.Solve, n, weightsPtr, valuesPtr, capacity, selectionPtr)
		}).
		Export("knapsack").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, m api.Module, n, weightsPtr, valuesPtr, capacity, selectionPtr int32) int32 {
			return call(m.Memory(), solver.Greedy, n, weightsPtr, valuesPtr, capacity, selectionPtr)
		}).
		Export("knapsack_greedy").
		Instantiate(ctx)
}
