package domain

import (
	"context"
	"log/slog"
	"slices"
)

// StateResolver looks up the two-letter state code for a coordinate pair.
type StateResolver interface {
	ResolveState(ctx context.Context, lat, lon float64) (string, error)
}

// BackfillStates fills in the state of incidents that have coordinates but no state.
// Lookup failures leave the state empty (graceful degradation). It returns a new
// slice and the number of incidents that were filled. A nil resolver is a no-op.
func BackfillStates(ctx context.Context, incidents []Incident, resolver StateResolver, logger *slog.Logger) ([]Incident, int) {
	out := slices.Clone(incidents)
	if resolver == nil {
		return out, 0
	}

	filled := 0
	for i := range out {
		if out[i].State != "" || !out[i].HasCoords() {
			continue
		}
		if ctx.Err() != nil {
			logger.Warn("state backfill interrupted", "error", ctx.Err(), "filled", filled)
			break
		}

		state, err := resolver.ResolveState(ctx, out[i].Geo.Lat, out[i].Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"year", out[i].Year,
				"lat", out[i].Geo.Lat,
				"lon", out[i].Geo.Lon,
				"error", err,
			)
			continue
		}
		if state == "" {
			continue
		}

		candidate := out[i]
		candidate.State = state
		if err := ValidateIncident(candidate); err != nil {
			logger.Warn("resolver returned unusable state", "state", state, "error", err)
			continue
		}
		out[i] = candidate
		filled++
	}
	return out, filled
}
