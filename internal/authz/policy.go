package authz

import "strings"

// Policy decides who may perform coach-only transitions. It is
// injected explicitly so lifecycle code never reads ambient config.
type Policy interface {
	IsCoach(email string) bool
}

// CoachEmailPolicy grants coach privileges to a single configured
// address. This is a capability check, not a stored role.
type CoachEmailPolicy struct {
	Email string
}

func NewCoachEmailPolicy(email string) CoachEmailPolicy {
	return CoachEmailPolicy{Email: strings.ToLower(strings.TrimSpace(email))}
}

func (p CoachEmailPolicy) IsCoach(email string) bool {
	if p.Email == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), p.Email)
}
