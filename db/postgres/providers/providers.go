package providers

import (
	"database/sql"
	"fmt"
)

// DBHelper hands the shared connection pool to the repositories.
type DBHelper struct {
	PostgresClient *sql.DB
}

func NewDbProvider(client *sql.DB) (*DBHelper, error) {
	if client == nil {
		return nil, fmt.Errorf("invalid postgres client: nil pointer provided")
	}
	return &DBHelper{PostgresClient: client}, nil
}
