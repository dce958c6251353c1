package main

import (
	"context"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
	"log"

	"github.com/joho/godotenv"
)

// dbtool initialises the schema and imports a station catalog file
// (DATABASE_URL, STATIONS_PATH).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	databaseURL := config.Get("DATABASE_URL", "data/app.db")
	conn, dialect, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchemaFor(ctx, conn, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	path := config.Get("STATIONS_PATH", "data/seeds/stations.csv")

	log.Printf("Importing stations from %s...", path)
	stations, unparsed, err := repositories.LoadStationsFile(path)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	store := repositories.NewStationStore(conn, dialect)
	written, skipped, err := repositories.ImportStations(ctx, store, stations)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("Import complete. written=%d skipped=%d", written, skipped+unparsed)
}
