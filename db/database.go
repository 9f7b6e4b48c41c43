package db

import (
	"database/sql"
	_ "embed"
	"log"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// InitDB opens the Postgres connection and applies the schema.
func InitDB(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if _, err = db.Exec(schema); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	return db
}
