// cmd/checkenv/main.go
// Verifies a deployment environment: configuration, database schema,
// Redis and the venue search backend.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/imadgeboyega/kiekky-datecards/internal/common/database"
	"github.com/imadgeboyega/kiekky-datecards/internal/config"
	"github.com/imadgeboyega/kiekky-datecards/internal/datecard"
)

var requiredTables = []string{"users", "swipes", "matches", "date_cards"}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️  No .env file found, using environment variables")
	} else {
		fmt.Println("✅ .env loaded")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fail("configuration invalid: %v", err)
	}
	fmt.Println("✅ Configuration valid")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		fail("can't reach database: %v", err)
	}
	defer db.Close()
	fmt.Println("✅ Connected to database")

	var present []string
	err = db.SelectContext(ctx, &present, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)`,
		pq.Array(requiredTables))
	if err != nil {
		fail("failed to list tables: %v", err)
	}
	if len(present) != len(requiredTables) {
		fmt.Printf("⚠️  Found %d of %d tables %v; the API creates missing ones on start\n",
			len(present), len(requiredTables), requiredTables)
	} else {
		fmt.Println("✅ All tables present")
	}

	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			fmt.Printf("⚠️  Redis unavailable (%v); venue lookups will not be cached\n", err)
		} else {
			rdb.Close()
			fmt.Println("✅ Connected to Redis")
		}
	}

	if !cfg.VenueLookupEnabled {
		fmt.Println("ℹ️  Venue lookup disabled")
		return
	}

	client := datecard.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent)
	results, err := client.Search(ctx, datecard.SearchQuery{
		Query: "cafe in " + cfg.DefaultCity,
		Limit: 1,
	})
	if err != nil {
		fmt.Printf("⚠️  Venue search failed (%v); date cards will use fallback venues\n", err)
		return
	}
	fmt.Printf("✅ Venue search returned %d result(s)\n", len(results))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
	os.Exit(1)
}
