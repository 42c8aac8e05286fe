package cloudstatus

import "time"

// Status represents the health state of a provider.
//
// Status is a string type holding one of the predefined values
// [StatusOperational], [StatusDegraded], [StatusMajorOutage],
// [StatusCriticalOutage] or [StatusUnknown]. Cloudflare indicators that have
// no mapping pass through verbatim, so a Status may also hold any other
// string reported by a provider.
type Status string

const (
	// StatusOperational indicates the provider reports no problems.
	StatusOperational Status = "operational"

	// StatusDegraded indicates some services are experiencing issues.
	StatusDegraded Status = "degraded"

	// StatusMajorOutage indicates a major outage (Cloudflare "major").
	StatusMajorOutage Status = "major_outage"

	// StatusCriticalOutage indicates a critical outage (Cloudflare "critical").
	StatusCriticalOutage Status = "critical_outage"

	// StatusUnknown indicates the status could not be determined.
	// This is always the case when a check carries an error.
	StatusUnknown Status = "unknown"
)

// String returns the string representation of the status.
// This implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// IsIssue reports whether the status counts against the aggregate health.
// Operational and unknown statuses are not issues; everything else is,
// including unmapped pass-through values.
func (s Status) IsIssue() bool {
	return s != StatusOperational && s != StatusUnknown
}

// CheckResult holds the outcome of checking a single provider.
//
// CheckResult is created once per provider per run and is immutable after
// creation. Optional fields are pointers: nil means absent, which is distinct
// from present-but-empty (Cloudflare may report an empty description).
type CheckResult struct {
	// Provider is the short label of the provider (e.g. "AWS"), or the id
	// exactly as requested when the provider is not known.
	Provider string

	// Status is the classified health state.
	Status Status

	// Message is the human-readable classification detail, if any.
	Message *string

	// Error describes a fetch or parse failure. Non-nil implies
	// Status == StatusUnknown.
	Error *string

	// IncidentCount is the number of ongoing incidents, when the provider
	// reports incidents (GCP only).
	IncidentCount *int

	// URL is the status endpoint that was polled. Empty for unknown providers.
	URL string

	// CheckedAt is the time the check completed.
	CheckedAt time.Time

	// Latency is the time taken by the fetch.
	Latency time.Duration
}

// HasError reports whether the check failed to fetch or parse.
func (r CheckResult) HasError() bool {
	return r.Error != nil
}

// unknownResult builds the result for a failed check.
func unknownResult(provider, errMsg string) CheckResult {
	return CheckResult{
		Provider: provider,
		Status:   StatusUnknown,
		Error:    &errMsg,
	}
}

// withMessage builds a result carrying a status and message.
func withMessage(status Status, msg string) CheckResult {
	return CheckResult{
		Status:  status,
		Message: &msg,
	}
}
