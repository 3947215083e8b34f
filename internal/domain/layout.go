package domain

import "fmt"

const (
	// DaySlots is the number of day tuples every record reserves, regardless
	// of the calendar length of its month.
	DaySlots = 31

	// TupleWidth is the byte width of one day tuple: value plus three flags.
	TupleWidth = 8

	// HeaderWidth covers station id, year, month and element.
	HeaderWidth = 21

	// RecordLength is the length of a full 31-day record.
	RecordLength = HeaderWidth + DaySlots*TupleWidth
)

// Field identifies one column of the fixed-width layout.
type Field int

const (
	FieldStationID Field = iota
	FieldYear
	FieldMonth
	FieldElement
	FieldValue
	FieldMeasurementFlag
	FieldQualityFlag
	FieldSourceFlag
)

type span struct {
	name   string
	offset int
	width  int
	perDay bool
}

// layout is indexed by Field. Per-day offsets are the day-0 position; slot i
// sits TupleWidth*i bytes further along.
var layout = [...]span{
	FieldStationID:       {name: "station_id", offset: 0, width: 11},
	FieldYear:            {name: "year", offset: 11, width: 4},
	FieldMonth:           {name: "month", offset: 15, width: 2},
	FieldElement:         {name: "element", offset: 17, width: 4},
	FieldValue:           {name: "value", offset: 21, width: 5, perDay: true},
	FieldMeasurementFlag: {name: "measurement_flag", offset: 26, width: 1, perDay: true},
	FieldQualityFlag:     {name: "quality_flag", offset: 27, width: 1, perDay: true},
	FieldSourceFlag:      {name: "source_flag", offset: 28, width: 1, perDay: true},
}

func (f Field) valid() bool { return f >= 0 && int(f) < len(layout) }

func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return layout[f].name
}

// Offset returns the byte offset of the field (of day slot 0 for per-day fields).
func (f Field) Offset() int {
	if !f.valid() {
		return -1
	}
	return layout[f].offset
}

// Width returns the byte width of the field.
func (f Field) Width() int {
	if !f.valid() {
		return 0
	}
	return layout[f].width
}

// PerDay reports whether the field repeats once per day slot.
func (f Field) PerDay() bool {
	return f.valid() && layout[f].perDay
}

// Extract returns the raw bytes of field from record, verbatim and untrimmed.
// day selects the slot (0..30) for per-day fields and is ignored otherwise.
// A record too short for the requested bytes, or a day outside 0..30, yields
// an error wrapping ErrOutOfBounds rather than a truncated read.
func Extract(record string, field Field, day int) (string, error) {
	if !field.valid() {
		return "", &FieldError{Field: field, Day: day, Err: fmt.Errorf("%w: no such field", ErrOutOfBounds)}
	}

	s := layout[field]
	start := s.offset
	if s.perDay {
		if day < 0 || day >= DaySlots {
			return "", &FieldError{Field: field, Day: day, Err: fmt.Errorf("%w: day %d not in 0..%d", ErrOutOfBounds, day, DaySlots-1)}
		}
		start += TupleWidth * day
	} else {
		day = noDay
	}

	end := start + s.width
	if len(record) < end {
		return "", &FieldError{Field: field, Day: day, Err: fmt.Errorf("%w: record is %d bytes, need %d", ErrOutOfBounds, len(record), end)}
	}
	return record[start:end], nil
}

func StationIDRaw(record string) (string, error) { return Extract(record, FieldStationID, 0) }

func YearRaw(record string) (string, error) { return Extract(record, FieldYear, 0) }

func MonthRaw(record string) (string, error) { return Extract(record, FieldMonth, 0) }

func ElementRaw(record string) (string, error) { return Extract(record, FieldElement, 0) }

func ValueRaw(record string, day int) (string, error) { return Extract(record, FieldValue, day) }

func MeasurementFlagRaw(record string, day int) (string, error) {
	return Extract(record, FieldMeasurementFlag, day)
}

func QualityFlagRaw(record string, day int) (string, error) {
	return Extract(record, FieldQualityFlag, day)
}

func SourceFlagRaw(record string, day int) (string, error) {
	return Extract(record, FieldSourceFlag, day)
}
