// Creates the sermon archive tables used by the search API.
//
// Environment variables:
//   POSTGRES_URI - PostgreSQL connection string
//
// Usage:
//   go run ./scripts/setup
//   go run ./scripts/setup -drop   # drop tables first
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sermon-archive-search-api/pkg/schema/db"
)

var dropStatements = []string{
	`DROP TABLE IF EXISTS sermon_attributes`,
	`DROP TABLE IF EXISTS scripture_tags`,
	`DROP TABLE IF EXISTS sermons`,
	`DROP TABLE IF EXISTS series`,
}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS series (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sermons (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT,
		transcript_text TEXT,
		sermon_type     TEXT,
		category        TEXT,
		has_outline     BOOLEAN NOT NULL DEFAULT FALSE,
		preached_at     TIMESTAMPTZ NOT NULL,
		series_id       TEXT REFERENCES series(id)
	)`,
	`CREATE TABLE IF NOT EXISTS scripture_tags (
		sermon_id   TEXT NOT NULL REFERENCES sermons(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		book        TEXT NOT NULL,
		chapter     INTEGER NOT NULL,
		verse_start INTEGER,
		verse_end   INTEGER,
		PRIMARY KEY (sermon_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS sermon_attributes (
		sermon_id TEXT NOT NULL REFERENCES sermons(id) ON DELETE CASCADE,
		attribute TEXT NOT NULL,
		value     TEXT NOT NULL,
		PRIMARY KEY (sermon_id, attribute, value)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scripture_tags_book_chapter ON scripture_tags (book, chapter)`,
	`CREATE INDEX IF NOT EXISTS idx_sermons_series ON sermons (series_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sermon_attributes_attribute ON sermon_attributes (attribute)`,
}

func main() {
	drop := flag.Bool("drop", false, "Drop existing tables before creating")
	flag.Parse()

	godotenv.Load()

	ctx := context.Background()
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.ClosePostgres()

	pgDB := db.GetPostgres()

	if *drop {
		for _, stmt := range dropStatements {
			if _, err := pgDB.ExecContext(ctx, stmt); err != nil {
				log.Fatalf("Drop failed: %v", err)
			}
		}
		log.Println("Dropped existing tables")
	}

	for _, stmt := range createStatements {
		if _, err := pgDB.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Create failed: %v", err)
		}
	}
	log.Println("Schema setup complete")
}
