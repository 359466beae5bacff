package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertPlanOrder checks that every named step appears in the text plan
// output, in the given relative order.
func AssertPlanOrder(t *testing.T, result *HarnessResult, ids ...string) {
	t.Helper()
	require.NoError(t, result.Err)

	last := -1
	for _, id := range ids {
		at := strings.Index(result.Output, ". "+id+" (level")
		require.NotEqual(t, -1, at, "step %q was not found in the plan:\n%s", id, result.Output)
		require.Greater(t, at, last, "step %q is out of order in the plan:\n%s", id, result.Output)
		last = at
	}
}
