// Package quantum provides the state-vector simulation primitives used by the
// period-finding pipeline.
//
// The package defines:
//
//   - [StateVector]: 2^(m+n) complex amplitudes over two registers, A (high
//     bits, width m) and B (low bits, width n)
//   - [Gate]: an immutable dense unitary acting on k qubits
//   - [Engine]: applies a gate to chosen qubit positions of a state
//
// Qubit position p addresses bit q-1-p of the basis index, where q = m+n, so
// position 0 is the most significant bit of register A.
//
// # Example
//
//	s, _ := quantum.New(2, 1)
//	s, _ = quantum.Apply(quantum.Hadamard(), []int{0}, s)
//	s, _ = quantum.Apply(quantum.Hadamard(), []int{1}, s)
//
// # Ownership
//
// Every operation returns a new [StateVector] and leaves its input untouched.
// [FromAmplitudes] takes ownership of the slice it is given.
package quantum
