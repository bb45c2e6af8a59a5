package claims

import (
	"time"

	dErrors "claimsys/pkg/domain-errors"
)

// ClaimStatus is the claim lifecycle state, persisted as its string label.
type ClaimStatus string

const (
	StatusSubmitted   ClaimStatus = "Submitted"
	StatusUnderReview ClaimStatus = "Under Review"
	StatusApproved    ClaimStatus = "Approved"
	StatusRejected    ClaimStatus = "Rejected"
	StatusClosed      ClaimStatus = "Closed"
)

// ParseClaimStatus reconstructs a persisted label into the enumeration. An
// unrecognized label means the stored row was written outside this system.
func ParseClaimStatus(label string) (ClaimStatus, error) {
	switch ClaimStatus(label) {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusClosed:
		return ClaimStatus(label), nil
	}
	return "", dErrors.New(dErrors.CodeDataCorruption, "unrecognized claim status: "+label)
}

// Policyholder is an individual owning zero-or-more policies.
type Policyholder struct {
	ID            string
	Name          string
	ContactNumber string
	Email         string
	DateOfBirth   time.Time
}

// Policy is a coverage contract with a validity window and coverage ceiling.
type Policy struct {
	ID             string
	PolicyholderID string
	Type           string
	StartDate      time.Time
	EndDate        time.Time
	CoverageAmount float64
	Premium        float64
}

// Claim is a compensation request against a policy for an incident inside the
// policy's coverage window.
type Claim struct {
	ID             string
	PolicyID       string
	DateOfIncident time.Time
	Description    string
	Amount         float64
	Status         ClaimStatus
	DateSubmitted  time.Time
}

// Patch types model partial updates. A non-nil field means "rewrite this
// column"; nil fields keep their stored value.

type PolicyholderPatch struct {
	Name          *string
	ContactNumber *string
	Email         *string
	DateOfBirth   *time.Time
}

func (p PolicyholderPatch) Empty() bool {
	return p.Name == nil && p.ContactNumber == nil && p.Email == nil && p.DateOfBirth == nil
}

type PolicyPatch struct {
	Type           *string
	StartDate      *time.Time
	EndDate        *time.Time
	CoverageAmount *float64
	Premium        *float64
}

func (p PolicyPatch) Empty() bool {
	return p.Type == nil && p.StartDate == nil && p.EndDate == nil &&
		p.CoverageAmount == nil && p.Premium == nil
}

type ClaimPatch struct {
	Description *string
	Amount      *float64
	Status      *ClaimStatus
}

func (p ClaimPatch) Empty() bool {
	return p.Description == nil && p.Amount == nil && p.Status == nil
}

// DateOnly strips the time-of-day component so boundary comparisons never
// depend on when during the day a value was produced.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
