package domain

import (
	"errors"
	"time"
)

// Header is the station-month-element prefix of a record.
type Header struct {
	StationID string  `json:"station_id"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Element   Element `json:"element"`
}

// Day is one decoded day tuple.
type Day struct {
	DayOfMonth  int             `json:"day"`
	Value       Value           `json:"value"`
	Measurement MeasurementFlag `json:"measurement"`
	Quality     QualityFlag     `json:"quality"`
	Source      SourceFlag      `json:"source"`
}

// Record is a fully decoded station-month. Days holds only the calendar-valid
// days of the month; padding slots past the month end are not decoded.
type Record struct {
	Header
	Days []Day `json:"days"`
}

// DaysIn returns the number of calendar days in month of year.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DecodeHeader decodes station id, year, month and element. The station id is
// returned verbatim, padding included.
func DecodeHeader(record string) (Header, error) {
	var h Header
	var err error

	if h.StationID, err = StationIDRaw(record); err != nil {
		return Header{}, err
	}

	raw, err := YearRaw(record)
	if err != nil {
		return Header{}, err
	}
	if h.Year, err = ParseYear(raw); err != nil {
		return Header{}, &FieldError{Field: FieldYear, Day: noDay, Raw: raw, Err: err}
	}

	if raw, err = MonthRaw(record); err != nil {
		return Header{}, err
	}
	if h.Month, err = ParseMonth(raw); err != nil {
		return Header{}, &FieldError{Field: FieldMonth, Day: noDay, Raw: raw, Err: err}
	}

	if raw, err = ElementRaw(record); err != nil {
		return Header{}, err
	}
	if h.Element, err = ClassifyElement(raw); err != nil {
		return Header{}, &FieldError{Field: FieldElement, Day: noDay, Raw: raw, Err: err}
	}

	return h, nil
}

// DecodeDay decodes the value and three flags of day slot day (0..30).
func DecodeDay(record string, day int) (Day, error) {
	d := Day{DayOfMonth: day + 1}

	raw, err := ValueRaw(record, day)
	if err != nil {
		return Day{}, err
	}
	if d.Value, err = ParseValue(raw); err != nil {
		return Day{}, &FieldError{Field: FieldValue, Day: day, Raw: raw, Err: err}
	}

	if raw, err = MeasurementFlagRaw(record, day); err != nil {
		return Day{}, err
	}
	if d.Measurement, err = ClassifyMeasurement(raw); err != nil {
		return Day{}, &FieldError{Field: FieldMeasurementFlag, Day: day, Raw: raw, Err: err}
	}

	if raw, err = QualityFlagRaw(record, day); err != nil {
		return Day{}, err
	}
	if d.Quality, err = ClassifyQuality(raw); err != nil {
		return Day{}, &FieldError{Field: FieldQualityFlag, Day: day, Raw: raw, Err: err}
	}

	if raw, err = SourceFlagRaw(record, day); err != nil {
		return Day{}, err
	}
	if d.Source, err = ClassifySource(raw); err != nil {
		return Day{}, &FieldError{Field: FieldSourceFlag, Day: day, Raw: raw, Err: err}
	}

	return d, nil
}

// DecodeRecord decodes the header and every calendar-valid day of a record.
// It stops at the first failing field; skipping bad days is left to callers,
// who can use DecodeDay directly.
func DecodeRecord(record string) (Record, error) {
	h, err := DecodeHeader(record)
	if err != nil {
		return Record{}, err
	}

	n := DaysIn(h.Year, h.Month)
	days := make([]Day, 0, n)
	for i := range n {
		d, err := DecodeDay(record, i)
		if err != nil {
			return Record{}, err
		}
		days = append(days, d)
	}

	return Record{Header: h, Days: days}, nil
}

// AsFieldError unwraps err to the FieldError that caused it, if any.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	ok := errors.As(err, &fe)
	return fe, ok
}
