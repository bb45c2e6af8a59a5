package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"claimsys/internal/claims"
	dErrors "claimsys/pkg/domain-errors"
)

// queryer is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same store code runs standalone or inside a coordinated transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists entities in PostgreSQL via database/sql.
type Postgres struct {
	q queryer
}

// NewPostgres builds a store over a connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{q: db}
}

// NewPostgresTx builds a store scoped to an open transaction. All reads and
// writes issued through it share the transaction's visibility.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{q: tx}
}

func (s *Postgres) InsertPolicyholder(ctx context.Context, p *claims.Policyholder) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO policyholders (id, name, contact_number, email, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, p.ContactNumber, p.Email, claims.DateOnly(p.DateOfBirth))
	if err != nil {
		return fmt.Errorf("insert policyholder: %w", err)
	}
	return nil
}

func (s *Postgres) GetPolicyholder(ctx context.Context, id string) (*claims.Policyholder, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, contact_number, email, date_of_birth
		FROM policyholders WHERE id = $1
	`, id)
	var p claims.Policyholder
	err := row.Scan(&p.ID, &p.Name, &p.ContactNumber, &p.Email, &p.DateOfBirth)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "policyholder not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get policyholder: %w", err)
	}
	return &p, nil
}

func (s *Postgres) ListPolicyholders(ctx context.Context) ([]*claims.Policyholder, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, contact_number, email, date_of_birth FROM policyholders
	`)
	if err != nil {
		return nil, fmt.Errorf("list policyholders: %w", err)
	}
	defer rows.Close()

	var out []*claims.Policyholder
	for rows.Next() {
		var p claims.Policyholder
		if err := rows.Scan(&p.ID, &p.Name, &p.ContactNumber, &p.Email, &p.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan policyholder: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Postgres) UpdatePolicyholder(ctx context.Context, id string, patch claims.PolicyholderPatch) error {
	var set []string
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.ContactNumber != nil {
		add("contact_number", *patch.ContactNumber)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.DateOfBirth != nil {
		add("date_of_birth", claims.DateOnly(*patch.DateOfBirth))
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.q.ExecContext(ctx,
		"UPDATE policyholders SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return fmt.Errorf("update policyholder: %w", err)
	}
	return nil
}

func (s *Postgres) DeletePolicyholder(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "policyholders", id)
}

func (s *Postgres) InsertPolicy(ctx context.Context, pol *claims.Policy) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO policies (id, policyholder_id, type, start_date, end_date, coverage_amount, premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, pol.ID, pol.PolicyholderID, pol.Type,
		claims.DateOnly(pol.StartDate), claims.DateOnly(pol.EndDate),
		pol.CoverageAmount, pol.Premium)
	if err != nil {
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

func (s *Postgres) GetPolicy(ctx context.Context, id string) (*claims.Policy, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, policyholder_id, type, start_date, end_date, coverage_amount, premium
		FROM policies WHERE id = $1
	`, id)
	var pol claims.Policy
	err := row.Scan(&pol.ID, &pol.PolicyholderID, &pol.Type,
		&pol.StartDate, &pol.EndDate, &pol.CoverageAmount, &pol.Premium)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return &pol, nil
}

func (s *Postgres) ListPolicies(ctx context.Context) ([]*claims.Policy, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, policyholder_id, type, start_date, end_date, coverage_amount, premium
		FROM policies
	`)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var out []*claims.Policy
	for rows.Next() {
		var pol claims.Policy
		if err := rows.Scan(&pol.ID, &pol.PolicyholderID, &pol.Type,
			&pol.StartDate, &pol.EndDate, &pol.CoverageAmount, &pol.Premium); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, &pol)
	}
	return out, rows.Err()
}

func (s *Postgres) UpdatePolicy(ctx context.Context, id string, patch claims.PolicyPatch) error {
	var set []string
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.StartDate != nil {
		add("start_date", claims.DateOnly(*patch.StartDate))
	}
	if patch.EndDate != nil {
		add("end_date", claims.DateOnly(*patch.EndDate))
	}
	if patch.CoverageAmount != nil {
		add("coverage_amount", *patch.CoverageAmount)
	}
	if patch.Premium != nil {
		add("premium", *patch.Premium)
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.q.ExecContext(ctx,
		"UPDATE policies SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	return nil
}

func (s *Postgres) DeletePolicy(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "policies", id)
}

func (s *Postgres) InsertClaim(ctx context.Context, c *claims.Claim) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO claims (id, policy_id, date_of_incident, description, amount, status, date_submitted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.PolicyID, claims.DateOnly(c.DateOfIncident), c.Description,
		c.Amount, string(c.Status), claims.DateOnly(c.DateSubmitted))
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (s *Postgres) GetClaim(ctx context.Context, id string) (*claims.Claim, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, policy_id, date_of_incident, description, amount, status, date_submitted
		FROM claims WHERE id = $1
	`, id)
	c, err := scanClaim(row.Scan)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
	}
	if err != nil {
		if dErrors.IsDomain(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

func (s *Postgres) ListClaims(ctx context.Context) ([]*claims.Claim, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, policy_id, date_of_incident, description, amount, status, date_submitted
		FROM claims
	`)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var out []*claims.Claim
	for rows.Next() {
		c, err := scanClaim(rows.Scan)
		if err != nil {
			if dErrors.IsDomain(err) {
				return nil, err
			}
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) UpdateClaim(ctx context.Context, id string, patch claims.ClaimPatch) error {
	var set []string
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.q.ExecContext(ctx,
		"UPDATE claims SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	return nil
}

func (s *Postgres) DeleteClaim(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "claims", id)
}

func (s *Postgres) deleteByID(ctx context.Context, table, id string) (bool, error) {
	res, err := s.q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return n > 0, nil
}

// scanClaim decodes a claim row, reconstructing the status enumeration. An
// unknown label surfaces as a DataCorruption error instead of a bad value.
func scanClaim(scan func(dest ...any) error) (*claims.Claim, error) {
	var (
		c     claims.Claim
		label string
	)
	if err := scan(&c.ID, &c.PolicyID, &c.DateOfIncident, &c.Description,
		&c.Amount, &label, &c.DateSubmitted); err != nil {
		return nil, err
	}
	status, err := claims.ParseClaimStatus(label)
	if err != nil {
		return nil, err
	}
	c.Status = status
	return &c, nil
}
