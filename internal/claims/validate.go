package claims

import (
	"fmt"
	"regexp"
	"time"

	dErrors "claimsys/pkg/domain-errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// adulthood is the minimum policyholder age, expressed with the 365-day year
// the rest of the rule set uses. Kept consistent across the age and claim
// window checks rather than corrected for leap years.
const adulthood = 18 * 365 * 24 * time.Hour

// claimWindow is how long after an incident a claim may still be submitted.
const claimWindow = 30 * 24 * time.Hour

// Clock supplies the current time so age checks stay deterministic in tests.
type Clock func() time.Time

// Validator holds the business-rule checks for all three entity classes. Each
// check is pure given the entity and its resolved parent record; resolving the
// parent is the caller's job, inside the same transaction as the write.
type Validator struct {
	clock Clock
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) ValidatorOption {
	return func(v *Validator) {
		if clock != nil {
			v.clock = clock
		}
	}
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Policyholder checks email and phone shape and the minimum-age rule.
func (v *Validator) Policyholder(p *Policyholder) error {
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if err := ValidatePhoneNumber(p.ContactNumber); err != nil {
		return err
	}
	return v.validateDateOfBirth(p.DateOfBirth)
}

// Policy checks the coverage window, the positive amounts, and that the
// policyholder existed and was of age when coverage started.
func (v *Validator) Policy(pol *Policy, holder *Policyholder) error {
	if holder == nil {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("policyholder with id %s does not exist", pol.PolicyholderID))
	}
	start := DateOnly(pol.StartDate)
	end := DateOnly(pol.EndDate)
	if !start.Before(end) {
		return dErrors.New(dErrors.CodeValidation, "policy start date must be before end date")
	}
	if pol.CoverageAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "coverage amount must be positive")
	}
	if pol.Premium <= 0 {
		return dErrors.New(dErrors.CodeValidation, "premium must be positive")
	}
	if start.Sub(DateOnly(holder.DateOfBirth)) < adulthood {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"policyholder must be at least 18 years old at policy start date")
	}
	return nil
}

// Claim checks the incident against the policy window, the amount against the
// coverage ceiling, and the submission timing rules.
func (v *Validator) Claim(c *Claim, pol *Policy) error {
	if pol == nil {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("policy with id %s does not exist", c.PolicyID))
	}
	incident := DateOnly(c.DateOfIncident)
	submitted := DateOnly(c.DateSubmitted)
	if incident.Before(DateOnly(pol.StartDate)) || incident.After(DateOnly(pol.EndDate)) {
		return dErrors.New(dErrors.CodeValidation, "claim date must be within policy period")
	}
	if c.Amount <= 0 || c.Amount > pol.CoverageAmount {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("claim amount must be positive and not exceed policy coverage of %v", pol.CoverageAmount))
	}
	if submitted.Before(incident) {
		return dErrors.New(dErrors.CodeValidation,
			"claim submission date cannot be earlier than the incident date")
	}
	if submitted.Sub(incident) > claimWindow {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"claims must be submitted within 30 days of the incident")
	}
	return nil
}

// ValidateEmail accepts anything shaped local@domain.tld. Deliverability is
// out of scope.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return dErrors.New(dErrors.CodeValidation, "invalid email format")
	}
	return nil
}

// ValidatePhoneNumber accepts 9-15 digits with an optional +1 prefix.
func ValidatePhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return dErrors.New(dErrors.CodeValidation, "invalid phone number format")
	}
	return nil
}

func (v *Validator) validateDateOfBirth(dob time.Time) error {
	now := DateOnly(v.clock())
	dob = DateOnly(dob)
	if dob.After(now) {
		return dErrors.New(dErrors.CodeValidation, "date of birth cannot be in the future")
	}
	if now.Sub(dob) < adulthood {
		return dErrors.New(dErrors.CodeInvariantViolation, "policyholder must be at least 18 years old")
	}
	return nil
}
