package domain

import (
	"fmt"
	"strings"
)

// SourcePriority lists all 28 non-blank source codes from highest to lowest
// priority. When the same day is available from several sources the archive
// keeps the highest-priority one. Nothing here resolves conflicts; the order
// is reference data for callers.
const SourcePriority = "ZR06CXWK7FBMrEzubsaGQIANTUHS"

// SourceFlag identifies the archive a day's value came from. Only blank and
// two named sources are decoded; the remaining legal codes fail with
// ErrUnknownCode.
type SourceFlag uint8

const (
	SourceNone    SourceFlag = iota // blank: no source (value missing)
	SourceECAandD                   // E: European Climate Assessment and Dataset
	SourceDSI9618                   // S: Global Summary of the Day (NCDC DSI-9618)
)

var sourceFlags = []flagInfo{
	SourceNone:    {' ', "none"},
	SourceECAandD: {'E', "eca_and_d"},
	SourceDSI9618: {'S', "dsi_9618"},
}

// ClassifySource maps a 1-byte source flag to its source.
func ClassifySource(raw string) (SourceFlag, error) {
	switch raw {
	case " ":
		return SourceNone, nil
	case "E":
		return SourceECAandD, nil
	case "S":
		return SourceDSI9618, nil
	}
	if KnownSourceCode(raw) {
		return 0, fmt.Errorf("%w: source flag %q is not supported", ErrUnknownCode, raw)
	}
	return 0, fmt.Errorf("%w: source flag %q", ErrUnknownCode, raw)
}

// KnownSourceCode reports whether raw is one of the 29 legal source codes
// (blank included), whether or not ClassifySource decodes it.
func KnownSourceCode(raw string) bool {
	if raw == " " {
		return true
	}
	return len(raw) == 1 && strings.Contains(SourcePriority, raw)
}

// SourceRank returns the priority rank of a source code, 0 being highest.
// Blank and unknown codes return -1.
func SourceRank(raw string) int {
	if len(raw) != 1 {
		return -1
	}
	return strings.IndexByte(SourcePriority, raw[0])
}

func (s SourceFlag) String() string { return flagString(sourceFlags, uint8(s), "source") }

func (s SourceFlag) Code() (byte, bool) { return flagCode(sourceFlags, uint8(s)) }

func (s SourceFlag) MarshalText() ([]byte, error) {
	return flagMarshal(sourceFlags, uint8(s), "source")
}

func (s *SourceFlag) UnmarshalText(text []byte) error {
	v, err := flagUnmarshal[SourceFlag](sourceFlags, text, "source")
	if err != nil {
		return err
	}
	*s = v
	return nil
}
