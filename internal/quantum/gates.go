package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	hadamard = mustGate("H", 1, []complex128{
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	})

	pauliX = mustGate("X", 1, []complex128{
		0, 1,
		1, 0,
	})

	cnot = mustGate("CNOT", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})

	swap = mustGate("SWAP", 2, []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
)

// Hadamard returns H = 1/√2 [[1, 1], [1, -1]].
func Hadamard() *Gate { return hadamard }

// PauliX returns the bit-flip gate.
func PauliX() *Gate { return pauliX }

// CNOT returns the controlled-NOT gate; the first target is the control.
func CNOT() *Gate { return cnot }

// Swap exchanges its two target qubits.
func Swap() *Gate { return swap }

// ControlledPhase returns diag(1, 1, 1, e^(iθ)).
func ControlledPhase(theta float64) *Gate {
	return mustGate(fmt.Sprintf("CP(%g)", theta), 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, cmplx.Exp(complex(0, theta)),
	})
}
