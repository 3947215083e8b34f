// Command dlycheck runs integrity checks over a GHCN-Daily .dly file: line
// layout, header decoding, day decoding and missing-value consistency. It
// exits non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/dlycheck -file data/mock/USC00011084.dly -workers 8
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
	"github.com/couchcryptid/ghcn-daily-etl/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// line is one non-blank input line with its 1-based line number.
type line struct {
	num  int
	text string
}

func main() {
	path := flag.String("file", "", "path to a .dly file")
	workers := flag.Int("workers", 4, "concurrent decode workers")
	maxErrors := flag.Int("max-errors", 20, "errors printed per failing phase (0 for all)")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*path, *workers, *maxErrors); code != 0 {
		os.Exit(code)
	}
}

func run(path string, workers, maxErrors int) int {
	fmt.Println("=== GHCN-Daily Integrity Check ===")
	fmt.Println()

	lines, err := loadLines(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", path, err)
		return 1
	}

	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}
	results := pipeline.DecodeBatch(context.Background(), texts, workers)

	phases := []*phase{
		validateLayout(lines),
		validateHeaders(lines),
		validateDays(lines, results),
		validateSentinels(lines, results),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	printSummary(results)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if maxErrors > 0 && i == maxErrors {
				fmt.Printf("  ... %d more\n", len(p.errors)-maxErrors)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nCheck FAILED.")
	return 1
}

// loadLines reads path, dropping blank lines and trailing carriage returns.
func loadLines(path string) ([]line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []line
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, line{num: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no records")
	}
	return out, nil
}

// ── Phase 1: Layout ──

func validateLayout(lines []line) *phase {
	p := &phase{name: "Phase 1: Layout (record length)"}
	for _, l := range lines {
		if len(l.text) != domain.RecordLength {
			p.errorf("line %d: %d bytes, want %d", l.num, len(l.text), domain.RecordLength)
		}
	}
	return p
}

// ── Phase 2: Headers ──
// Every header decodes, the file holds one station, and no
// station-month-element appears twice.

func validateHeaders(lines []line) *phase {
	p := &phase{name: "Phase 2: Headers (decode, station, duplicates)"}

	seen := make(map[domain.Header]int, len(lines))
	var station string
	for _, l := range lines {
		h, err := domain.DecodeHeader(l.text)
		if err != nil {
			p.errorf("line %d: %v", l.num, err)
			continue
		}
		if station == "" {
			station = h.StationID
		} else if h.StationID != station {
			p.errorf("line %d: station %q, file started with %q", l.num, h.StationID, station)
		}
		if first, dup := seen[h]; dup {
			p.errorf("line %d: %s %04d-%02d %s duplicates line %d", l.num, h.StationID, h.Year, h.Month, h.Element.Code(), first)
			continue
		}
		seen[h] = l.num
	}
	return p
}

// ── Phase 3: Days ──

func validateDays(lines []line, results []pipeline.BatchResult) *phase {
	p := &phase{name: "Phase 3: Days (value and flag decode)"}
	for i, r := range results {
		if r.Err == nil {
			continue
		}
		fe, ok := domain.AsFieldError(r.Err)
		if !ok || !fe.Field.PerDay() {
			// Header failures are reported by phase 2.
			continue
		}
		p.errorf("line %d: %s: %v", lines[i].num, domain.ErrorKind(r.Err), r.Err)
	}
	return p
}

// ── Phase 4: Sentinels ──
// Slots past the end of the month must be the missing sentinel with blank
// flags, and missing calendar days must not name a source.

func validateSentinels(lines []line, results []pipeline.BatchResult) *phase {
	p := &phase{name: "Phase 4: Sentinels (padding and missing days)"}
	missing := fmt.Sprintf("%5d", domain.MissingValue)

	for i, r := range results {
		if r.Err != nil {
			continue
		}
		for _, d := range r.Record.Days {
			if !d.Value.Present && d.Source != domain.SourceNone {
				p.errorf("line %d day %d: missing value has source %s", lines[i].num, d.DayOfMonth, d.Source)
			}
		}
		for slot := len(r.Record.Days); slot < domain.DaySlots; slot++ {
			checkPadding(p, lines[i], slot, missing)
		}
	}
	return p
}

func checkPadding(p *phase, l line, slot int, missing string) {
	value, err := domain.ValueRaw(l.text, slot)
	if err != nil {
		p.errorf("line %d day %d: %v", l.num, slot+1, err)
		return
	}
	if value != missing {
		p.errorf("line %d day %d: padding value %q, want %q", l.num, slot+1, value, missing)
	}
	for _, f := range []func(string, int) (string, error){domain.MeasurementFlagRaw, domain.QualityFlagRaw, domain.SourceFlagRaw} {
		raw, err := f(l.text, slot)
		if err != nil {
			p.errorf("line %d day %d: %v", l.num, slot+1, err)
			return
		}
		if raw != " " {
			p.errorf("line %d day %d: padding flag %q, want blank", l.num, slot+1, raw)
		}
	}
}

func printSummary(results []pipeline.BatchResult) {
	var ok, valid, missing, flagged int
	kinds := map[string]int{}
	elements := map[string]int{}
	for _, r := range results {
		if r.Err != nil {
			kinds[domain.ErrorKind(r.Err)]++
			continue
		}
		ok++
		elements[r.Record.Element.Code()]++
		for _, d := range r.Record.Days {
			switch {
			case !d.Value.Present:
				missing++
			case d.Quality.Failed():
				valid++
				flagged++
			default:
				valid++
			}
		}
	}

	fmt.Printf("Records: %d total, %d decoded, %d failed\n", len(results), ok, len(results)-ok)
	fmt.Printf("Days: %d valid, %d missing, %d quality-flagged\n", valid, missing, flagged)
	printCounts("By element", elements)
	printCounts("Failures by kind", kinds)
}

func printCounts(label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("%s:", label)
	for _, k := range keys {
		fmt.Printf(" %s=%d", k, counts[k])
	}
	fmt.Println()
}
