// Package shor drives order finding on a simulated quantum state and turns
// the measured periods into factors.
//
// The step functions ([Initialize], [ApplySuperposition], [ApplyOracle],
// [MeasureRegisterB], [QFT], [MeasureRegisterA], [PeriodExtract]) are pure:
// each consumes a state and returns a new one. [Run] sequences them for one
// attempt, and [Factorizer] retries attempts over bases until a nontrivial
// factor pair is found.
//
// # Example
//
//	f := shor.New(shor.DefaultConfig())
//	res, err := f.Factor(ctx, 15)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.P, res.Q)
package shor
