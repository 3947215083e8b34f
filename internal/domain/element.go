package domain

import (
	"fmt"
	"strings"
)

// Element is the meteorological quantity a record measures. The zero value is
// not a valid element.
type Element uint8

const (
	Precipitation Element = iota + 1 // PRCP, tenths of mm
	Snowfall                         // SNOW, mm
	SnowDepth                        // SNWD, mm
	MaxTemp                          // TMAX, tenths of degrees C
	MinTemp                          // TMIN, tenths of degrees C
	AvgTemp                          // TAVG, tenths of degrees C
)

var elementInfo = [...]struct {
	code string
	name string
	unit string
}{
	Precipitation: {code: "PRCP", name: "precipitation", unit: "tenths_mm"},
	Snowfall:      {code: "SNOW", name: "snowfall", unit: "mm"},
	SnowDepth:     {code: "SNWD", name: "snow_depth", unit: "mm"},
	MaxTemp:       {code: "TMAX", name: "max_temp", unit: "tenths_celsius"},
	MinTemp:       {code: "TMIN", name: "min_temp", unit: "tenths_celsius"},
	AvgTemp:       {code: "TAVG", name: "avg_temp", unit: "tenths_celsius"},
}

// ClassifyElement maps a 4-byte element code to its Element. Codes outside the
// six core elements fail with ErrUnknownCode.
func ClassifyElement(raw string) (Element, error) {
	switch raw {
	case "PRCP":
		return Precipitation, nil
	case "SNOW":
		return Snowfall, nil
	case "SNWD":
		return SnowDepth, nil
	case "TMAX":
		return MaxTemp, nil
	case "TMIN":
		return MinTemp, nil
	case "TAVG":
		return AvgTemp, nil
	default:
		// TODO: the readme lists ~50 further element codes (WSFG, AWND, WT**);
		// they need an "other" variant carrying the raw code.
		return 0, fmt.Errorf("%w: element %q", ErrUnknownCode, raw)
	}
}

// ParseElements classifies a list of element codes, ignoring case and
// surrounding whitespace. It is used for configuration, not for records.
func ParseElements(codes []string) ([]Element, error) {
	out := make([]Element, 0, len(codes))
	for _, c := range codes {
		e, err := ClassifyElement(strings.ToUpper(strings.TrimSpace(c)))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (e Element) valid() bool { return e > 0 && int(e) < len(elementInfo) }

// Code returns the 4-byte record code, e.g. "TMAX".
func (e Element) Code() string {
	if !e.valid() {
		return ""
	}
	return elementInfo[e].code
}

// Unit names the unit of the element's daily values.
func (e Element) Unit() string {
	if !e.valid() {
		return ""
	}
	return elementInfo[e].unit
}

func (e Element) String() string {
	if !e.valid() {
		return fmt.Sprintf("element(%d)", uint8(e))
	}
	return elementInfo[e].name
}

// MarshalText encodes the element as its record code.
func (e Element) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: element(%d)", ErrUnknownCode, uint8(e))
	}
	return []byte(e.Code()), nil
}

func (e *Element) UnmarshalText(text []byte) error {
	v, err := ClassifyElement(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
