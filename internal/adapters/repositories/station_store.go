package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

// StationStore is a repository that can both list and write stations.
type StationStore interface {
	ports.StationRepository
	ports.StationWriter
}

// NewStationStore returns the repository matching dialect.
func NewStationStore(conn *sql.DB, dialect db.Dialect) StationStore {
	if dialect == db.Postgres {
		return NewSQLStationRepository(conn)
	}
	return NewSqliteStationRepository(conn)
}

// DedupeCheapest keeps one record per station ID, the cheapest. Input order
// is preserved for the first occurrence of each ID.
func DedupeCheapest(stations []domain.Station) []domain.Station {
	pos := make(map[string]int, len(stations))
	out := make([]domain.Station, 0, len(stations))
	for _, st := range stations {
		if i, ok := pos[st.ID]; ok {
			if st.PricePerGallon < out[i].PricePerGallon {
				out[i] = st
			}
			continue
		}
		pos[st.ID] = len(out)
		out = append(out, st)
	}
	return out
}

// ImportStations validates, dedupes and writes stations. Invalid records are
// counted in skipped rather than failing the import.
func ImportStations(ctx context.Context, w ports.StationWriter, stations []domain.Station) (written, skipped int, err error) {
	valid := make([]domain.Station, 0, len(stations))
	for _, st := range stations {
		if st.Validate() != nil {
			skipped++
			continue
		}
		valid = append(valid, st)
	}

	written, err = w.UpsertStations(ctx, DedupeCheapest(valid))
	if err != nil {
		return 0, skipped, fmt.Errorf("import stations: %w", err)
	}
	return written, skipped, nil
}
