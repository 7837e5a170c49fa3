package abi

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/optpack/optpack/solver"
)

// Status codes returned through the flat contract in place of a total.
// Guests distinguish success from failure by sign alone.
const (
	// StatusInvalidArgument reports a negative n or capacity, or a
	// negative weight or value.
	StatusInvalidArgument int32 = -1
	// StatusOutOfRange reports an instance beyond the solver's documented
	// limits.
	StatusOutOfRange int32 = -2
	// StatusMemoryFault reports an array region outside guest linear
	// memory.
	StatusMemoryFault int32 = -3
)

// Memory is the slice of wazero's api.Memory the codec needs. api.Memory
// satisfies it; tests substitute a flat byte buffer.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
}

// solveFunc is the common shape of solver.Solve and solver.Greedy.
type solveFunc func(weights, values []int32, capacity int32, selection []int32) (int32, error)

// call unmarshals the flat arguments from guest memory, runs fn, and
// writes the selection flags back. Nothing is written on error.
func call(mem Memory, fn solveFunc, n, weightsPtr, valuesPtr, capacity, selectionPtr int32) int32 {
	if n < 0 {
		return StatusInvalidArgument
	}
	byteLen := uint64(n) * 4
	if byteLen > math.MaxUint32 {
		return StatusMemoryFault
	}

	weights, ok := readInt32s(mem, uint32(weightsPtr), uint32(byteLen))
	if !ok {
		return StatusMemoryFault
	}
	values, ok := readInt32s(mem, uint32(valuesPtr), uint32(byteLen))
	if !ok {
		return StatusMemoryFault
	}
	// Probe the output region before solving so a bad pointer cannot
	// surface as a partially reported result.
	if n > 0 {
		if _, ok := mem.Read(uint32(selectionPtr), uint32(byteLen)); !ok {
			return StatusMemoryFault
		}
	}

	selection := make([]int32, n)
	total, err := fn(weights, values, capacity, selection)
	if err != nil {
		return statusOf(err)
	}

	if n > 0 && !writeInt32s(mem, uint32(selectionPtr), selection) {
		return StatusMemoryFault
	}
	return total
}

func statusOf(err error) int32 {
	switch {
	case errors.Is(err, solver.ErrOutOfRange):
		return StatusOutOfRange
	default:
		return StatusInvalidArgument
	}
}

func readInt32s(mem Memory, ptr, byteLen uint32) ([]int32, bool) {
	if byteLen == 0 {
		return nil, true
	}
	raw, ok := mem.Read(ptr, byteLen)
	if !ok {
		return nil, false
	}
	out := make([]int32, byteLen/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, true
}

func writeInt32s(mem Memory, ptr uint32, vals []int32) bool {
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return mem.Write(ptr, buf)
}
