package domain

import (
	"fmt"
	"strings"
)

// ParseRawEvent decodes a RawEvent's value into a StationMonth. Trailing line
// terminators are stripped; spaces are significant and left alone.
func ParseRawEvent(raw RawEvent) (StationMonth, error) {
	line := strings.TrimRight(string(raw.Value), "\r\n")

	rec, err := DecodeRecord(line)
	if err != nil {
		return StationMonth{}, fmt.Errorf("parse raw event: %w", err)
	}

	return StationMonth{
		Record:     rec,
		RawPayload: raw.Value,
	}, nil
}

// EnrichStationMonth derives the record id, unit, day counts and processing
// timestamp from a decoded record.
func EnrichStationMonth(sm StationMonth) StationMonth {
	sm.ID = recordID(sm.Header)
	sm.Unit = sm.Element.Unit()
	sm.ValidDays, sm.FlaggedDays = countDays(sm.Days)
	sm.ProcessedAt = clock.Now()
	return sm
}

// recordID is deterministic so reprocessing the same line upserts rather than
// duplicates downstream, e.g. "USC00011084-2020-01-TMAX".
func recordID(h Header) string {
	return fmt.Sprintf("%s-%04d-%02d-%s", strings.TrimSpace(h.StationID), h.Year, h.Month, h.Element.Code())
}

// countDays returns how many days carry a value and how many of those failed a
// quality check.
func countDays(days []Day) (valid, flagged int) {
	for _, d := range days {
		if !d.Value.Present {
			continue
		}
		valid++
		if d.Quality.Failed() {
			flagged++
		}
	}
	return valid, flagged
}
