// Package runner executes one vector write run end to end.
//
// Run validates the raw input, loads items from a dataset or takes the
// inline vectors, writes them with the selected provider, prices the result
// and publishes it to the configured sink. Each stage is a state of a
// lifecycle state machine:
//
//	validating -> ensuring_target -> building -> upserting -> summarizing -> summarized
//
// Any stage may move to failed. Transitions are logged.
//
//	r := runner.New(runner.DefaultSettings(),
//	    runner.WithLogger(log),
//	    runner.WithDatasetSource(src),
//	)
//	res, err := r.Run(ctx, raw)
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, runner.FailureMessage(err, runinput.Secrets(raw)...))
//	}
//
// FailureMessage turns any returned error into a message that is safe to
// show to users. Unknown errors collapse to a generic message; their details
// are only logged.
package runner
