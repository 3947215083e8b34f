package pipeline_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
	"github.com/couchcryptid/ghcn-daily-etl/internal/pipeline"
)

func TestDecodeBatch(t *testing.T) {
	var lines []string
	for i := range 40 {
		lines = append(lines, string(encodeLine(t,
			domain.Header{StationID: fmt.Sprintf("ST%09d", i), Year: 2000 + i%20, Month: 1 + i%12, Element: domain.Snowfall},
			domain.Day{DayOfMonth: 1, Value: domain.PresentValue(i)},
		)))
	}
	lines[7] = "short"
	lines[23] = lines[23][:17] + "WSFG" + lines[23][21:]

	results := pipeline.DecodeBatch(context.Background(), lines, 8)
	require.Len(t, results, len(lines))

	for i, r := range results {
		assert.Equal(t, i, r.Line)
		switch i {
		case 7:
			assert.ErrorIs(t, r.Err, domain.ErrOutOfBounds)
		case 23:
			assert.ErrorIs(t, r.Err, domain.ErrUnknownCode)
		default:
			require.NoError(t, r.Err, "line %d", i)
			assert.Equal(t, fmt.Sprintf("ST%09d", i), r.Record.StationID)
			assert.Equal(t, domain.PresentValue(i), r.Record.Days[0].Value)
		}
	}
}

func TestDecodeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pipeline.DecodeBatch(ctx, []string{"a", "b"}, 0)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
