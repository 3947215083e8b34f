package domain

import (
	"fmt"
	"strconv"
)

// Blank returns a full-length record with an empty header and every day slot
// set to the missing sentinel with blank flags.
func Blank() []byte {
	rec := make([]byte, RecordLength)
	for i := range rec {
		rec[i] = ' '
	}
	for day := range DaySlots {
		copy(rec[FieldValue.Offset()+TupleWidth*day:], strconv.Itoa(MissingValue))
	}
	return rec
}

// EncodeHeader writes h into the header bytes of record. Station ids shorter
// than 11 bytes are right-padded with spaces.
func EncodeHeader(record []byte, h Header) error {
	if len(record) < HeaderWidth {
		return fmt.Errorf("%w: record is %d bytes, need %d", ErrOutOfBounds, len(record), HeaderWidth)
	}
	if len(h.StationID) > FieldStationID.Width() {
		return fmt.Errorf("%w: station id %q longer than %d bytes", ErrOutOfBounds, h.StationID, FieldStationID.Width())
	}
	if h.Year < 0 || h.Year > 9999 {
		return fmt.Errorf("%w: year %d does not fit 4 bytes", ErrMalformedNumber, h.Year)
	}
	if h.Month < 1 || h.Month > 12 {
		return fmt.Errorf("%w: month %d not in 1..12", ErrMalformedNumber, h.Month)
	}
	code := h.Element.Code()
	if code == "" {
		return fmt.Errorf("%w: %s", ErrUnknownCode, h.Element)
	}

	put(record, FieldStationID, 0, fmt.Sprintf("%-11s", h.StationID))
	put(record, FieldYear, 0, fmt.Sprintf("%04d", h.Year))
	put(record, FieldMonth, 0, fmt.Sprintf("%02d", h.Month))
	put(record, FieldElement, 0, code)
	return nil
}

// EncodeDay writes d into day slot day of record. An absent value is written
// as the missing sentinel; DayOfMonth is not encoded.
func EncodeDay(record []byte, day int, d Day) error {
	if day < 0 || day >= DaySlots {
		return fmt.Errorf("%w: day %d not in 0..%d", ErrOutOfBounds, day, DaySlots-1)
	}
	if end := HeaderWidth + TupleWidth*(day+1); len(record) < end {
		return fmt.Errorf("%w: record is %d bytes, need %d", ErrOutOfBounds, len(record), end)
	}

	value := MissingValue
	if d.Value.Present {
		if d.Value.Amount == MissingValue {
			return fmt.Errorf("%w: %d is the missing sentinel", ErrMalformedNumber, MissingValue)
		}
		value = d.Value.Amount
	}
	text := fmt.Sprintf("%5d", value)
	if len(text) > FieldValue.Width() {
		return fmt.Errorf("%w: value %d does not fit 5 bytes", ErrMalformedNumber, value)
	}

	m, ok := d.Measurement.Code()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCode, d.Measurement)
	}
	q, ok := d.Quality.Code()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCode, d.Quality)
	}
	s, ok := d.Source.Code()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCode, d.Source)
	}

	put(record, FieldValue, day, text)
	put(record, FieldMeasurementFlag, day, string(m))
	put(record, FieldQualityFlag, day, string(q))
	put(record, FieldSourceFlag, day, string(s))
	return nil
}

// EncodeRecord renders r as a full-length record. Day slots not present in
// r.Days are left missing.
func EncodeRecord(r Record) ([]byte, error) {
	rec := Blank()
	if err := EncodeHeader(rec, r.Header); err != nil {
		return nil, err
	}
	for _, d := range r.Days {
		if err := EncodeDay(rec, d.DayOfMonth-1, d); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func put(record []byte, field Field, day int, text string) {
	off := field.Offset()
	if field.PerDay() {
		off += TupleWidth * day
	}
	copy(record[off:off+field.Width()], text)
}
