package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testStation   = "GME00121150"
	missingTuple  = "-9999   "
	testTMAXLine  = testStation + "201801TMAX"
	testPRCPLine  = testStation + "201802PRCP"
	testShortHead = "USC0001"
)

// buildLine joins a 21-byte header with day tuples, padding the remaining
// slots with missing tuples so the result is always a full-length record.
func buildLine(t *testing.T, header string, tuples ...string) string {
	t.Helper()
	require.Len(t, header, HeaderWidth, "header width")
	require.LessOrEqual(t, len(tuples), DaySlots)

	var b strings.Builder
	b.WriteString(header)
	for _, tp := range tuples {
		require.Len(t, tp, TupleWidth, "tuple %q", tp)
		b.WriteString(tp)
	}
	for range DaySlots - len(tuples) {
		b.WriteString(missingTuple)
	}

	line := b.String()
	require.Len(t, line, RecordLength)
	return line
}
