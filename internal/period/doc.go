// Package period recovers the order r of a modulo N from a register-A
// measurement c ≈ kQ/r using continued fractions, and turns an even period
// into a factor pair of N.
//
// Failing to find a period is a normal outcome reported through
// [Extraction.Outcome], not an error; errors are reserved for invalid input.
package period
