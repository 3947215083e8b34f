// Command genmock writes a synthetic .dly file for one station, plus an
// optional JSON fixture of the enriched station-months. Records are rendered
// with the domain encoder and decoded back before writing, so the fixture
// matches real pipeline output.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -station USC00011084 \
//	  -from 2018 -to 2019 \
//	  -elements TMAX,TMIN,PRCP \
//	  -out data/mock/USC00011084.dly \
//	  -json-out data/mock/USC00011084.json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

type options struct {
	station  string
	from, to int
	elements []domain.Element
	seed     uint64
	out      string
	jsonOut  string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	station := flag.String("station", "USC00011084", "station id (at most 11 characters)")
	from := flag.Int("from", 2018, "first year")
	to := flag.Int("to", 2018, "last year")
	elements := flag.String("elements", "TMAX,TMIN,PRCP,SNOW,SNWD", "comma-separated element codes")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "", "output path for the .dly file")
	jsonOut := flag.String("json-out", "", "optional output path for the decoded JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *from > *to {
		return fmt.Errorf("-from %d is after -to %d", *from, *to)
	}
	elems, err := domain.ParseElements(strings.Split(*elements, ","))
	if err != nil {
		return fmt.Errorf("parse -elements: %w", err)
	}

	opts := options{station: *station, from: *from, to: *to, elements: elems, seed: *seed, out: *out, jsonOut: *jsonOut}

	// Fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(opts.to+1, time.January, 1, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	records := generate(opts)

	months, err := writeDLY(opts.out, records)
	if err != nil {
		return fmt.Errorf("writing .dly: %w", err)
	}
	log.Printf("wrote %d records: %s", len(records), opts.out)

	if opts.jsonOut != "" {
		if err := writeJSON(opts.jsonOut, months); err != nil {
			return fmt.Errorf("writing JSON fixture: %w", err)
		}
		log.Printf("wrote JSON fixture: %s", opts.jsonOut)
	}

	printStats(months)
	return nil
}

// generate produces one record per year, month and element, in the order the
// archive lists them.
func generate(opts options) []domain.Record {
	rng := rand.New(rand.NewPCG(opts.seed, uint64(opts.from)))
	var records []domain.Record //nolint:prealloc // size depends on flags
	for year := opts.from; year <= opts.to; year++ {
		for month := 1; month <= 12; month++ {
			for _, e := range opts.elements {
				records = append(records, domain.Record{
					Header: domain.Header{StationID: opts.station, Year: year, Month: month, Element: e},
					Days:   generateDays(rng, year, month, e),
				})
			}
		}
	}
	return records
}

func generateDays(rng *rand.Rand, year, month int, e domain.Element) []domain.Day {
	n := domain.DaysIn(year, month)
	days := make([]domain.Day, 0, n)
	for d := 1; d <= n; d++ {
		day := domain.Day{DayOfMonth: d}
		// Roughly 3% of days are missing.
		if rng.IntN(100) < 3 {
			days = append(days, day)
			continue
		}
		day.Value = domain.PresentValue(sampleValue(rng, month, d, e))
		day.Source = domain.SourceECAandD
		if rng.IntN(200) == 0 {
			day.Quality = domain.QualityClimatological
		}
		if e == domain.Precipitation && day.Value.Amount == 0 && rng.IntN(10) == 0 {
			day.Measurement = domain.MeasurementTrace
		}
		days = append(days, day)
	}
	return days
}

// sampleValue draws a plausible daily value in the element's native unit.
func sampleValue(rng *rand.Rand, month, day int, e domain.Element) int {
	// Seasonal cycle peaking mid-July.
	season := math.Cos(2 * math.Pi * (float64(month-1)*30.4 + float64(day) - 196) / 365)
	winter := season < -0.3

	switch e {
	case domain.MaxTemp:
		return int(180+120*season) + rng.IntN(41) - 20
	case domain.MinTemp:
		return int(60+100*season) + rng.IntN(41) - 20
	case domain.AvgTemp:
		return int(120+110*season) + rng.IntN(31) - 15
	case domain.Precipitation:
		if rng.IntN(10) < 7 {
			return 0
		}
		return rng.IntN(250)
	case domain.Snowfall:
		if !winter || rng.IntN(10) < 8 {
			return 0
		}
		return rng.IntN(150)
	case domain.SnowDepth:
		if !winter {
			return 0
		}
		return rng.IntN(300)
	default:
		return 0
	}
}

// writeDLY encodes each record, decodes it again through the pipeline's
// parsing path and writes the encoded lines to path.
func writeDLY(path string, records []domain.Record) ([]domain.StationMonth, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	months := make([]domain.StationMonth, 0, len(records))
	for _, r := range records {
		line, err := domain.EncodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("encode %s-%04d-%02d-%s: %w", r.StationID, r.Year, r.Month, r.Element.Code(), err)
		}
		sm, err := domain.ParseRawEvent(domain.RawEvent{Value: line})
		if err != nil {
			return nil, err
		}
		months = append(months, domain.EnrichStationMonth(sm))

		if _, err := w.Write(line); err != nil {
			return nil, err
		}
		if err := w.WriteByte('\n'); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return months, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func printStats(months []domain.StationMonth) {
	byElement := map[string]int{}
	var valid, flagged, days int
	for _, m := range months {
		byElement[m.Element.Code()]++
		valid += m.ValidDays
		flagged += m.FlaggedDays
		days += len(m.Days)
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Records: %d\n", len(months))
	fmt.Printf("By element:")
	for _, e := range []domain.Element{domain.Precipitation, domain.Snowfall, domain.SnowDepth, domain.MaxTemp, domain.MinTemp, domain.AvgTemp} {
		if n := byElement[e.Code()]; n > 0 {
			fmt.Printf(" %s=%d", e.Code(), n)
		}
	}
	fmt.Println()
	fmt.Printf("Days: %d decoded, %d valid, %d missing, %d flagged\n", days, valid, days-valid, flagged)
}
