package claims

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dErrors "claimsys/pkg/domain-errors"
)

// fixedNow keeps age arithmetic deterministic across test runs.
var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

func yearsBefore(t time.Time, years int) time.Time {
	return t.Add(-time.Duration(years) * 365 * 24 * time.Hour)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validHolder() *Policyholder {
	return &Policyholder{
		ID:            "PH1",
		Name:          "Ada Smith",
		ContactNumber: "+15551234567",
		Email:         "ada@example.com",
		DateOfBirth:   yearsBefore(fixedNow, 30),
	}
}

func TestValidatePolicyholder(t *testing.T) {
	v := NewValidator(WithClock(testClock))

	tests := []struct {
		name     string
		mutate   func(*Policyholder)
		wantCode dErrors.Code
	}{
		{name: "valid", mutate: func(p *Policyholder) {}},
		{
			name:     "twenty years old passes",
			mutate:   func(p *Policyholder) { p.DateOfBirth = yearsBefore(fixedNow, 20) },
			wantCode: "",
		},
		{
			name:     "bad email",
			mutate:   func(p *Policyholder) { p.Email = "not-an-email" },
			wantCode: dErrors.CodeValidation,
		},
		{
			name:     "email missing domain dot",
			mutate:   func(p *Policyholder) { p.Email = "a@b" },
			wantCode: dErrors.CodeValidation,
		},
		{
			name:     "bad phone",
			mutate:   func(p *Policyholder) { p.ContactNumber = "abc123" },
			wantCode: dErrors.CodeValidation,
		},
		{
			name:     "phone too short",
			mutate:   func(p *Policyholder) { p.ContactNumber = "12345" },
			wantCode: dErrors.CodeValidation,
		},
		{
			name:     "future date of birth",
			mutate:   func(p *Policyholder) { p.DateOfBirth = fixedNow.Add(48 * time.Hour) },
			wantCode: dErrors.CodeValidation,
		},
		{
			name:     "ten years old is a rule violation",
			mutate:   func(p *Policyholder) { p.DateOfBirth = yearsBefore(fixedNow, 10) },
			wantCode: dErrors.CodeInvariantViolation,
		},
		{
			name:     "one day short of eighteen 365-day years",
			mutate:   func(p *Policyholder) { p.DateOfBirth = yearsBefore(fixedNow, 18).Add(24 * time.Hour) },
			wantCode: dErrors.CodeInvariantViolation,
		},
		{
			name:   "exactly eighteen 365-day years",
			mutate: func(p *Policyholder) { p.DateOfBirth = yearsBefore(fixedNow, 18) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validHolder()
			tt.mutate(p)
			err := v.Policyholder(p)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, dErrors.Is(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestValidatePolicy(t *testing.T) {
	v := NewValidator(WithClock(testClock))
	holder := validHolder()

	valid := func() *Policy {
		return &Policy{
			ID:             "POL1",
			PolicyholderID: holder.ID,
			Type:           "auto",
			StartDate:      date(2025, 1, 1),
			EndDate:        date(2026, 1, 1),
			CoverageAmount: 50000,
			Premium:        1200,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Policy(valid(), holder))
	})

	t.Run("missing policyholder", func(t *testing.T) {
		err := v.Policy(valid(), nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("start equals end", func(t *testing.T) {
		pol := valid()
		pol.EndDate = pol.StartDate
		assert.True(t, dErrors.Is(v.Policy(pol, holder), dErrors.CodeValidation))
	})

	t.Run("start after end", func(t *testing.T) {
		pol := valid()
		pol.StartDate = date(2026, 6, 1)
		assert.True(t, dErrors.Is(v.Policy(pol, holder), dErrors.CodeValidation))
	})

	t.Run("non-positive coverage", func(t *testing.T) {
		pol := valid()
		pol.CoverageAmount = 0
		assert.True(t, dErrors.Is(v.Policy(pol, holder), dErrors.CodeValidation))
	})

	t.Run("non-positive premium", func(t *testing.T) {
		pol := valid()
		pol.Premium = -1
		assert.True(t, dErrors.Is(v.Policy(pol, holder), dErrors.CodeValidation))
	})

	t.Run("holder underage at policy start", func(t *testing.T) {
		young := validHolder()
		young.DateOfBirth = date(2010, 1, 1)
		err := v.Policy(valid(), young)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvariantViolation))
	})

	t.Run("start date before holder's 18th birthday", func(t *testing.T) {
		h := validHolder()
		h.DateOfBirth = date(2008, 1, 1)
		pol := valid()
		pol.StartDate = date(2025, 1, 1) // 17 years after dob
		pol.EndDate = date(2026, 1, 1)
		err := v.Policy(pol, h)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvariantViolation))
	})

	t.Run("time of day does not affect window check", func(t *testing.T) {
		pol := valid()
		pol.StartDate = time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
		pol.EndDate = time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)
		assert.NoError(t, v.Policy(pol, holder))
	})
}

func TestValidateClaim(t *testing.T) {
	v := NewValidator(WithClock(testClock))

	policy := &Policy{
		ID:             "POL1",
		PolicyholderID: "PH1",
		Type:           "auto",
		StartDate:      date(2025, 1, 1),
		EndDate:        date(2025, 12, 31),
		CoverageAmount: 10000,
		Premium:        500,
	}

	valid := func() *Claim {
		return &Claim{
			ID:             "CLM1",
			PolicyID:       policy.ID,
			DateOfIncident: date(2025, 3, 10),
			Description:    "rear-end collision",
			Amount:         2500,
			Status:         StatusSubmitted,
			DateSubmitted:  date(2025, 3, 20),
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Claim(valid(), policy))
	})

	t.Run("missing policy", func(t *testing.T) {
		err := v.Claim(valid(), nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("incident before window", func(t *testing.T) {
		c := valid()
		c.DateOfIncident = date(2024, 12, 31)
		assert.True(t, dErrors.Is(v.Claim(c, policy), dErrors.CodeValidation))
	})

	t.Run("incident after window", func(t *testing.T) {
		c := valid()
		c.DateOfIncident = date(2026, 1, 1)
		c.DateSubmitted = date(2026, 1, 2)
		assert.True(t, dErrors.Is(v.Claim(c, policy), dErrors.CodeValidation))
	})

	t.Run("incident on window boundaries is allowed", func(t *testing.T) {
		c := valid()
		c.DateOfIncident = policy.StartDate
		c.DateSubmitted = policy.StartDate
		assert.NoError(t, v.Claim(c, policy))

		c.DateOfIncident = policy.EndDate
		c.DateSubmitted = policy.EndDate
		assert.NoError(t, v.Claim(c, policy))
	})

	t.Run("zero amount", func(t *testing.T) {
		c := valid()
		c.Amount = 0
		assert.True(t, dErrors.Is(v.Claim(c, policy), dErrors.CodeValidation))
	})

	t.Run("amount over coverage", func(t *testing.T) {
		c := valid()
		c.Amount = policy.CoverageAmount + 1
		assert.True(t, dErrors.Is(v.Claim(c, policy), dErrors.CodeValidation))
	})

	t.Run("amount equal to coverage is allowed", func(t *testing.T) {
		c := valid()
		c.Amount = policy.CoverageAmount
		assert.NoError(t, v.Claim(c, policy))
	})

	t.Run("submitted before incident", func(t *testing.T) {
		c := valid()
		c.DateSubmitted = c.DateOfIncident.Add(-24 * time.Hour)
		assert.True(t, dErrors.Is(v.Claim(c, policy), dErrors.CodeValidation))
	})

	t.Run("submitted 30 days after incident is allowed", func(t *testing.T) {
		c := valid()
		c.DateSubmitted = c.DateOfIncident.Add(30 * 24 * time.Hour)
		assert.NoError(t, v.Claim(c, policy))
	})

	t.Run("submitted 31 days after incident is a rule violation", func(t *testing.T) {
		c := valid()
		c.DateSubmitted = c.DateOfIncident.Add(31 * 24 * time.Hour)
		err := v.Claim(c, policy)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvariantViolation))
	})
}

func TestParseClaimStatus(t *testing.T) {
	for _, label := range []string{"Submitted", "Under Review", "Approved", "Rejected", "Closed"} {
		status, err := ParseClaimStatus(label)
		assert.NoError(t, err)
		assert.Equal(t, ClaimStatus(label), status)
	}

	_, err := ParseClaimStatus("Reopened")
	assert.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeDataCorruption))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 3, 10, 18, 45, 12, 999, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
