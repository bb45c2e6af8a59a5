package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL. Both referential edges cascade so deleting a policyholder
// removes its policies and, transitively, their claims.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS policyholders (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		contact_number VARCHAR(20) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		date_of_birth DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS policies (
		id VARCHAR(100) PRIMARY KEY,
		policyholder_id VARCHAR(100) NOT NULL,
		type VARCHAR(50) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		coverage_amount DECIMAL(10, 2) NOT NULL,
		premium DECIMAL(10, 2) NOT NULL,
		FOREIGN KEY (policyholder_id) REFERENCES policyholders(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS claims (
		id VARCHAR(100) PRIMARY KEY,
		policy_id VARCHAR(100) NOT NULL,
		date_of_incident DATE NOT NULL,
		description TEXT NOT NULL,
		amount DECIMAL(10, 2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		date_submitted DATE NOT NULL,
		FOREIGN KEY (policy_id) REFERENCES policies(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS login_users (
		id VARCHAR(100) PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL
	)`,
}

// InitSchema provisions the four relations. Idempotent; meant for startup and
// test setup, not as a migration system.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
