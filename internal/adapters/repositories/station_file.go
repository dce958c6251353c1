package repositories

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// StationSeed is the JSON form of a catalog record.
type StationSeed struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	PricePerGallon float64 `json:"price_per_gallon"`
}

// Accepted CSV header spellings, lower-cased.
var csvColumns = map[string][]string{
	"id":      {"id", "station_id", "opis truckstop id"},
	"name":    {"name", "truckstop name"},
	"address": {"address"},
	"city":    {"city"},
	"state":   {"state"},
	"lat":     {"latitude", "lat"},
	"lon":     {"longitude", "lon", "lng"},
	"price":   {"price", "retail price", "price_per_gallon"},
}

var requiredColumns = []string{"id", "lat", "lon", "price"}

// LoadStationsFile reads a station catalog from a .json or .csv file.
// Rows that cannot be parsed are skipped; the number skipped is returned.
func LoadStationsFile(path string) ([]domain.Station, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load stations: open %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseStationsJSON(f)
	case ".csv":
		return ParseStationsCSV(f)
	default:
		return nil, 0, fmt.Errorf("load stations: unsupported file type %q (want .json or .csv)", filepath.Ext(path))
	}
}

func ParseStationsJSON(r io.Reader) ([]domain.Station, int, error) {
	var data []StationSeed
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, 0, fmt.Errorf("load stations: parse json: %w", err)
	}

	stations := make([]domain.Station, 0, len(data))
	skipped := 0
	for _, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			skipped++
			continue
		}
		stations = append(stations, domain.Station{
			ID:             id,
			Name:           strings.TrimSpace(item.Name),
			Address:        strings.TrimSpace(item.Address),
			City:           strings.TrimSpace(item.City),
			State:          strings.TrimSpace(item.State),
			Location:       domain.Coordinates{Lat: item.Lat, Lon: item.Lon},
			PricePerGallon: item.PricePerGallon,
		})
	}

	logSkipped("json", skipped)
	return stations, skipped, nil
}

func ParseStationsCSV(r io.Reader) ([]domain.Station, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("load stations: read csv header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var stations []domain.Station
	skipped := 0
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("load stations: read csv line %d: %w", line, err)
		}

		s, err := stationFromRecord(rec, cols)
		if err != nil {
			skipped++
			continue
		}
		stations = append(stations, s)
	}

	logSkipped("csv", skipped)
	return stations, skipped, nil
}

func mapColumns(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		// Excel exports may carry a byte order mark on the first column.
		h = strings.TrimPrefix(h, "\ufeff")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int, len(csvColumns))
	for field, names := range csvColumns {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				cols[field] = i
				break
			}
		}
	}

	for _, f := range requiredColumns {
		if _, ok := cols[f]; !ok {
			return nil, fmt.Errorf("load stations: csv header is missing a %q column", f)
		}
	}
	return cols, nil
}

func stationFromRecord(rec []string, cols map[string]int) (domain.Station, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	id := field("id")
	if id == "" {
		return domain.Station{}, errors.New("empty id")
	}
	lat, err := strconv.ParseFloat(field("lat"), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(field("lon"), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("longitude: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimPrefix(field("price"), "$"), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("price: %w", err)
	}

	return domain.Station{
		ID:             id,
		Name:           field("name"),
		Address:        field("address"),
		City:           field("city"),
		State:          field("state"),
		Location:       domain.Coordinates{Lat: lat, Lon: lon},
		PricePerGallon: price,
	}, nil
}

func logSkipped(format string, skipped int) {
	if skipped > 0 {
		log.Printf("op=stations.load format=%s skipped=%d", format, skipped)
	}
}
