package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
)

// ErrFiltered marks a record dropped by the element filter. It is not a
// decode failure.
var ErrFiltered = errors.New("element filtered")

// GHCNTransformer implements Transformer using the domain decoder, with an
// optional element allow-list.
type GHCNTransformer struct {
	allow  map[domain.Element]bool
	logger *slog.Logger
}

// NewTransformer creates a GHCNTransformer. An empty filter publishes every
// element.
func NewTransformer(filter []domain.Element, logger *slog.Logger) *GHCNTransformer {
	var allow map[domain.Element]bool
	if len(filter) > 0 {
		allow = make(map[domain.Element]bool, len(filter))
		for _, e := range filter {
			allow[e] = true
		}
	}
	return &GHCNTransformer{allow: allow, logger: logger}
}

func (t *GHCNTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.StationMonth, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.StationMonth{}, err
	}

	if t.allow != nil && !t.allow[rec.Element] {
		return domain.StationMonth{}, fmt.Errorf("%w: %s", ErrFiltered, rec.Element.Code())
	}

	return domain.EnrichStationMonth(rec), nil
}
