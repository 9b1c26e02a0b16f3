package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func flagSet(t *testing.T, input string) *flag.FlagSet {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.String("input", "", "")
	require.NoError(t, set.Set("input", input))
	return set
}
