package domain

import "fmt"

// flagInfo is one row of a flag table: the single-byte record code and the
// name used in JSON output.
type flagInfo struct {
	code byte
	name string
}

func flagString(table []flagInfo, v uint8, kind string) string {
	if int(v) >= len(table) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}
	return table[v].name
}

func flagCode(table []flagInfo, v uint8) (byte, bool) {
	if int(v) >= len(table) {
		return 0, false
	}
	return table[v].code, true
}

func flagMarshal(table []flagInfo, v uint8, kind string) ([]byte, error) {
	if int(v) >= len(table) {
		return nil, fmt.Errorf("%w: %s(%d)", ErrUnknownCode, kind, v)
	}
	return []byte(table[v].name), nil
}

func flagUnmarshal[T ~uint8](table []flagInfo, text []byte, kind string) (T, error) {
	for i, f := range table {
		if f.name == string(text) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownCode, kind, text)
}

// MeasurementFlag describes how a day's value was measured or derived.
type MeasurementFlag uint8

const (
	MeasurementNone                 MeasurementFlag = iota // blank
	MeasurementTwoTotals                                   // B: total of two 12-hour totals
	MeasurementFourTotals                                  // D: total of four 6-hour totals
	MeasurementHourly                                      // H: highest/lowest hourly, or hourly average for TAVG
	MeasurementConvertedKnots                              // K
	MeasurementLagged                                      // L: lagged relative to observation hour
	MeasurementConvertedOktas                              // O
	MeasurementMissingPresumedZero                         // P: DSI 3200/3206 "missing presumed zero"
	MeasurementTrace                                       // T: trace of precipitation, snowfall or depth
	MeasurementConverted16PointWBAN                        // W: from 16-point WBAN wind direction code
)

var measurementFlags = []flagInfo{
	MeasurementNone:                 {' ', "none"},
	MeasurementTwoTotals:            {'B', "two_totals"},
	MeasurementFourTotals:           {'D', "four_totals"},
	MeasurementHourly:               {'H', "hourly"},
	MeasurementConvertedKnots:       {'K', "converted_knots"},
	MeasurementLagged:               {'L', "lagged"},
	MeasurementConvertedOktas:       {'O', "converted_oktas"},
	MeasurementMissingPresumedZero:  {'P', "missing_presumed_zero"},
	MeasurementTrace:                {'T', "trace"},
	MeasurementConverted16PointWBAN: {'W', "converted_16_point_wban"},
}

// ClassifyMeasurement maps a 1-byte measurement flag to its meaning.
func ClassifyMeasurement(raw string) (MeasurementFlag, error) {
	switch raw {
	case " ":
		return MeasurementNone, nil
	case "B":
		return MeasurementTwoTotals, nil
	case "D":
		return MeasurementFourTotals, nil
	case "H":
		return MeasurementHourly, nil
	case "K":
		return MeasurementConvertedKnots, nil
	case "L":
		return MeasurementLagged, nil
	case "O":
		return MeasurementConvertedOktas, nil
	case "P":
		return MeasurementMissingPresumedZero, nil
	case "T":
		return MeasurementTrace, nil
	case "W":
		return MeasurementConverted16PointWBAN, nil
	default:
		return 0, fmt.Errorf("%w: measurement flag %q", ErrUnknownCode, raw)
	}
}

func (m MeasurementFlag) String() string {
	return flagString(measurementFlags, uint8(m), "measurement")
}

// Code returns the record byte for the flag.
func (m MeasurementFlag) Code() (byte, bool) { return flagCode(measurementFlags, uint8(m)) }

func (m MeasurementFlag) MarshalText() ([]byte, error) {
	return flagMarshal(measurementFlags, uint8(m), "measurement")
}

func (m *MeasurementFlag) UnmarshalText(text []byte) error {
	v, err := flagUnmarshal[MeasurementFlag](measurementFlags, text, "measurement")
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// QualityFlag names the quality-assurance check a value failed, if any.
type QualityFlag uint8

const (
	QualityNone             QualityFlag = iota // blank: passed all checks
	QualityDuplicate                           // D
	QualityGap                                 // G
	QualityInternal                            // I: internal consistency
	QualityStreak                              // K: streak/frequent-value
	QualityMultiday                            // L: multiday period total
	QualityMegaconsistency                     // M
	QualityNaught                              // N
	QualityClimatological                      // O: climatological outlier
	QualityLaggedRange                         // R
	QualitySpatial                             // S
	QualityTemporal                            // T
	QualityTooWarmForSnow                      // W
	QualityBounds                              // X
)

var qualityFlags = []flagInfo{
	QualityNone:            {' ', "none"},
	QualityDuplicate:       {'D', "duplicate"},
	QualityGap:             {'G', "gap"},
	QualityInternal:        {'I', "internal_consistency"},
	QualityStreak:          {'K', "streak"},
	QualityMultiday:        {'L', "multiday"},
	QualityMegaconsistency: {'M', "megaconsistency"},
	QualityNaught:          {'N', "naught"},
	QualityClimatological:  {'O', "climatological_outlier"},
	QualityLaggedRange:     {'R', "lagged_range"},
	QualitySpatial:         {'S', "spatial_consistency"},
	QualityTemporal:        {'T', "temporal_consistency"},
	QualityTooWarmForSnow:  {'W', "too_warm_for_snow"},
	QualityBounds:          {'X', "bounds"},
}

// ClassifyQuality maps a 1-byte quality flag to its meaning.
func ClassifyQuality(raw string) (QualityFlag, error) {
	switch raw {
	case " ":
		return QualityNone, nil
	case "D":
		return QualityDuplicate, nil
	case "G":
		return QualityGap, nil
	case "I":
		return QualityInternal, nil
	case "K":
		return QualityStreak, nil
	case "L":
		return QualityMultiday, nil
	case "M":
		return QualityMegaconsistency, nil
	case "N":
		return QualityNaught, nil
	case "O":
		return QualityClimatological, nil
	case "R":
		return QualityLaggedRange, nil
	case "S":
		return QualitySpatial, nil
	case "T":
		return QualityTemporal, nil
	case "W":
		return QualityTooWarmForSnow, nil
	case "X":
		return QualityBounds, nil
	default:
		return 0, fmt.Errorf("%w: quality flag %q", ErrUnknownCode, raw)
	}
}

// Failed reports whether the value failed a quality check.
func (q QualityFlag) Failed() bool { return q != QualityNone }

func (q QualityFlag) String() string { return flagString(qualityFlags, uint8(q), "quality") }

func (q QualityFlag) Code() (byte, bool) { return flagCode(qualityFlags, uint8(q)) }

func (q QualityFlag) MarshalText() ([]byte, error) {
	return flagMarshal(qualityFlags, uint8(q), "quality")
}

func (q *QualityFlag) UnmarshalText(text []byte) error {
	v, err := flagUnmarshal[QualityFlag](qualityFlags, text, "quality")
	if err != nil {
		return err
	}
	*q = v
	return nil
}
