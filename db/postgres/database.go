package postgres

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Db struct {
	PostgresClient *sql.DB
}

// ConnectDB establishes a connection to the PostgreSQL database,
// retrying until the database answers or the attempt budget runs out.
func ConnectDB() *Db {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)

	var db *sql.DB
	var err error
	maxRetries, _ := strconv.Atoi(os.Getenv("MAX_DB_ATTEMPTS"))
	if maxRetries == 0 {
		maxRetries = 10
	}

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", connStr)
		if err != nil {
			log.Warn().Err(err).Int("attempt", i+1).Msg("failed to open database connection")
			time.Sleep(2 * time.Second)
			continue
		}

		if err = db.Ping(); err == nil {
			log.Info().Msg("connected to PostgreSQL")
			return &Db{PostgresClient: db}
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("failed to ping PostgreSQL")
		time.Sleep(2 * time.Second)
	}

	log.Fatal().Err(err).Msg("exceeded max retries connecting to PostgreSQL")
	return nil
}

// Stop gracefully closes the PostgreSQL connection.
func (db *Db) Stop() {
	if db.PostgresClient != nil {
		if err := db.PostgresClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing PostgreSQL connection")
		}
	}
}

// InitSchema applies schema.sql. Intended for development setups; a
// real deployment would run migrations instead.
func (db *Db) InitSchema() error {
	schemaPath := filepath.Join("db", "postgres", "schema.sql")
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err = db.PostgresClient.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	log.Info().Msg("database schema initialized")
	return nil
}
