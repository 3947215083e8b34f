package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyElement(t *testing.T) {
	known := map[string]Element{
		"PRCP": Precipitation,
		"SNOW": Snowfall,
		"SNWD": SnowDepth,
		"TMAX": MaxTemp,
		"TMIN": MinTemp,
		"TAVG": AvgTemp,
	}
	for code, want := range known {
		t.Run(code, func(t *testing.T) {
			got, err := ClassifyElement(code)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, code, got.Code())
		})
	}

	for _, code := range []string{"XXXX", "WSFG", "AWND", "tmax", "TMA", "TMAXX", "    ", ""} {
		t.Run(fmt.Sprintf("unknown %q", code), func(t *testing.T) {
			_, err := ClassifyElement(code)
			assert.ErrorIs(t, err, ErrUnknownCode)
		})
	}
}

func TestElement_Unit(t *testing.T) {
	assert.Equal(t, "tenths_mm", Precipitation.Unit())
	assert.Equal(t, "mm", SnowDepth.Unit())
	assert.Equal(t, "tenths_celsius", AvgTemp.Unit())
	assert.Empty(t, Element(0).Unit())
}

func TestElement_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Element{"e": MinTemp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":"TMIN"}`, string(data))

	var back map[string]Element
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, MinTemp, back["e"])

	_, err = json.Marshal(Element(0))
	assert.Error(t, err)
}

func TestParseElements(t *testing.T) {
	got, err := ParseElements([]string{" tmax", "PRCP "})
	require.NoError(t, err)
	assert.Equal(t, []Element{MaxTemp, Precipitation}, got)

	_, err = ParseElements([]string{"TMAX", "WIND"})
	assert.ErrorIs(t, err, ErrUnknownCode)
}

// printable returns every single-byte printable ASCII string plus a few
// out-of-domain inputs.
func printable() []string {
	out := []string{"", "  ", "EE", "\t", "\x00"}
	for c := byte(0x20); c < 0x7f; c++ {
		out = append(out, string(c))
	}
	return out
}

func TestClassifyMeasurement_Domain(t *testing.T) {
	known := map[string]MeasurementFlag{
		" ": MeasurementNone,
		"B": MeasurementTwoTotals,
		"D": MeasurementFourTotals,
		"H": MeasurementHourly,
		"K": MeasurementConvertedKnots,
		"L": MeasurementLagged,
		"O": MeasurementConvertedOktas,
		"P": MeasurementMissingPresumedZero,
		"T": MeasurementTrace,
		"W": MeasurementConverted16PointWBAN,
	}
	require.Len(t, known, 10)

	for _, raw := range printable() {
		got, err := ClassifyMeasurement(raw)
		want, ok := known[raw]
		if !ok {
			assert.ErrorIs(t, err, ErrUnknownCode, "%q", raw)
			continue
		}
		require.NoError(t, err, "%q", raw)
		assert.Equal(t, want, got)

		code, ok := got.Code()
		require.True(t, ok)
		assert.Equal(t, raw, string(code))
	}
}

func TestClassifyQuality_Domain(t *testing.T) {
	known := map[string]QualityFlag{
		" ": QualityNone,
		"D": QualityDuplicate,
		"G": QualityGap,
		"I": QualityInternal,
		"K": QualityStreak,
		"L": QualityMultiday,
		"M": QualityMegaconsistency,
		"N": QualityNaught,
		"O": QualityClimatological,
		"R": QualityLaggedRange,
		"S": QualitySpatial,
		"T": QualityTemporal,
		"W": QualityTooWarmForSnow,
		"X": QualityBounds,
	}
	require.Len(t, known, 14)

	for _, raw := range printable() {
		got, err := ClassifyQuality(raw)
		want, ok := known[raw]
		if !ok {
			assert.ErrorIs(t, err, ErrUnknownCode, "%q", raw)
			continue
		}
		require.NoError(t, err, "%q", raw)
		assert.Equal(t, want, got)
		assert.Equal(t, raw != " ", got.Failed())
	}
}

func TestClassifySource_Domain(t *testing.T) {
	known := map[string]SourceFlag{
		" ": SourceNone,
		"E": SourceECAandD,
		"S": SourceDSI9618,
	}

	for _, raw := range printable() {
		got, err := ClassifySource(raw)
		want, ok := known[raw]
		if !ok {
			assert.ErrorIs(t, err, ErrUnknownCode, "%q", raw)
			continue
		}
		require.NoError(t, err, "%q", raw)
		assert.Equal(t, want, got)
	}
}

func TestClassifySource_UnimplementedLegalCodes(t *testing.T) {
	unsupported := 0
	for _, c := range SourcePriority {
		raw := string(c)
		require.True(t, KnownSourceCode(raw), raw)
		if raw == "E" || raw == "S" {
			continue
		}
		unsupported++
		_, err := ClassifySource(raw)
		require.ErrorIs(t, err, ErrUnknownCode, raw)
		assert.Contains(t, err.Error(), "not supported")
	}
	assert.Equal(t, 26, unsupported)
	assert.True(t, KnownSourceCode(" "))
	assert.False(t, KnownSourceCode("Y"))
}

func TestSourceRank(t *testing.T) {
	assert.Equal(t, 0, SourceRank("Z"))
	assert.Equal(t, 13, SourceRank("E"))
	assert.Equal(t, 27, SourceRank("S"))
	assert.Less(t, SourceRank("E"), SourceRank("S"))
	assert.Equal(t, -1, SourceRank(" "))
	assert.Equal(t, -1, SourceRank("Y"))
	assert.Equal(t, -1, SourceRank("ZR"))
}

func TestFlags_JSON(t *testing.T) {
	type flags struct {
		M MeasurementFlag `json:"m"`
		Q QualityFlag     `json:"q"`
		S SourceFlag      `json:"s"`
	}
	in := flags{M: MeasurementTrace, Q: QualityNone, S: SourceECAandD}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"m":"trace","q":"none","s":"eca_and_d"}`, string(data))

	var back flags
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in, back)

	err = json.Unmarshal([]byte(`{"m":"sideways"}`), &back)
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestFlags_String(t *testing.T) {
	assert.Equal(t, "converted_16_point_wban", MeasurementConverted16PointWBAN.String())
	assert.Equal(t, "bounds", QualityBounds.String())
	assert.Equal(t, "dsi_9618", SourceDSI9618.String())
	assert.Equal(t, "source(9)", SourceFlag(9).String())
}
