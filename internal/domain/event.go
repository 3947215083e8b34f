package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic. Value
// holds one .dly line.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// StationMonth is the decoded, enriched form of one record destined for the
// sink topic.
type StationMonth struct {
	ID string `json:"id"`
	Record
	Unit        string    `json:"unit"`
	ValidDays   int       `json:"valid_days"`
	FlaggedDays int       `json:"flagged_days"`
	ProcessedAt time.Time `json:"processed_at"`

	RawPayload []byte `json:"-"`
}
