// Package billing computes the per-vector charge reported with every run.
//
//	charge := billing.Calculate(1000)
//	// charge.Amount == 0.4
package billing
