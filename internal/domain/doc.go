// Package domain decodes GHCN-Daily station-month records.
//
// # Data Source
//
// Records come from the NOAA NCEI Global Historical Climatology Network daily
// archive (.dly files), one line per station, month and element. The format is
// documented in section III of
// https://www.ncei.noaa.gov/pub/data/ghcn/daily/readme.txt. The upstream
// collector publishes each line verbatim to the Kafka source topic.
//
// # Layout
//
// Every record is fixed width. The header is followed by 31 eight-byte day
// tuples whether or not the month has 31 days:
//
//	bytes  0-10   station id      11 chars, returned verbatim
//	bytes 11-14   year            4 digits
//	bytes 15-16   month           2 digits, 01-12
//	bytes 17-20   element         PRCP, SNOW, SNWD, TMAX, TMIN, TAVG
//	bytes 21+8i   value[i]        5 chars, signed, right-justified
//	byte  26+8i   mflag[i]
//	byte  27+8i   qflag[i]
//	byte  28+8i   sflag[i]
//
// A full record is 21 + 31*8 = 269 bytes. Slots past the end of a short month
// hold -9999 and blank flags; [DecodeRecord] only decodes calendar-valid days.
//
// # Missing values
//
// -9999 is the sentinel for "no measurement". [ParseValue] turns it into an
// absent [Value]; no real measurement ever takes that value.
//
// # Whitespace policy
//
// Year and month are parsed strictly: the format zero-pads both, so anything
// but digits, a space or a sign included, is malformed. Values are
// right-justified and are trimmed before parsing. Flags are single bytes where
// a space is meaningful ("none").
//
// # Errors
//
// Nothing in this package panics on bad input. Failures wrap one of
// [ErrOutOfBounds], [ErrMalformedNumber] or [ErrUnknownCode], and record-level
// decoders attach a [FieldError] naming the field and day that failed.
//
// # Sources
//
// Only blank, "E" (ECA&D) and "S" (DSI-9618) source flags are decoded. The 26
// other legal codes fail with [ErrUnknownCode]; their priority order is kept
// as data in [SourcePriority].
//
// All functions are pure and safe for concurrent use.
package domain
