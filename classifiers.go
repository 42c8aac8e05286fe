package cloudstatus

import (
	"encoding/json"
	"strings"
)

// parseErrorMessage is reported when a JSON status document cannot be read.
const parseErrorMessage = "Could not parse status response"

// Classifier is a function type that determines a provider's health from the
// body of its status page.
//
// Classifier is a pure function: the same body always produces the same
// result. The returned [CheckResult] carries Status, Message, Error and
// IncidentCount; the [Checker] fills in the provider label, URL and timing.
//
// Classification of third-party HTML is keyword based and fragile. The
// keyword lists below must not change: they define which pages are reported
// as healthy.
//
// # Panic Safety
//
// Classifiers are called within a panic recovery boundary. If one panics,
// the provider's status is set to [StatusUnknown] with an error containing a
// correlation ID, and the stack trace is logged.
type Classifier func(body string) CheckResult

// AWSClassifier classifies the AWS Health Dashboard HTML page.
//
//   - [StatusOperational]: contains "Service is operating normally", or
//     "operational" in any case
//   - [StatusDegraded]: contains "Service disruption", or "outage" in any case
//   - [StatusOperational] ("Status page accessible"): no keyword matched
//
// The last rule treats the absence of a negative signal as healthy. A page
// that words a disruption differently is reported operational.
var AWSClassifier Classifier = func(body string) CheckResult {
	if body != "" {
		lower := strings.ToLower(body)
		if strings.Contains(body, "Service is operating normally") || strings.Contains(lower, "operational") {
			return withMessage(StatusOperational, "All services operating normally")
		}
		if strings.Contains(body, "Service disruption") || strings.Contains(lower, "outage") {
			return withMessage(StatusDegraded, "Some services experiencing issues")
		}
	}
	return withMessage(StatusOperational, "Status page accessible")
}

// AzureClassifier classifies the Azure status HTML page. Matching is done on
// the lower-cased body.
//
//   - [StatusOperational]: "all services are running normally" or "good"
//   - [StatusDegraded]: "degraded", "outage" or "issue"
//   - [StatusOperational] ("Status page accessible"): no keyword matched
var AzureClassifier Classifier = func(body string) CheckResult {
	if body != "" {
		lower := strings.ToLower(body)
		if containsAny(lower, "all services are running normally", "good") {
			return withMessage(StatusOperational, "All services running normally")
		}
		if containsAny(lower, "degraded", "outage", "issue") {
			return withMessage(StatusDegraded, "Some services may be experiencing issues")
		}
	}
	return withMessage(StatusOperational, "Status page accessible")
}

// GCPClassifier classifies the Google Cloud incidents feed, a JSON array of
// incident objects.
//
// An incident is ongoing when its "end" field is absent or null, or when its
// "currently_affected_locations" field is truthy. Any ongoing incident makes
// the provider [StatusDegraded]; the message is the first ongoing incident's
// "external_desc" and IncidentCount is the number of ongoing incidents.
//
// A body that is not a JSON array of objects yields [StatusUnknown] with the
// error "Could not parse status response".
var GCPClassifier Classifier = func(body string) CheckResult {
	var incidents []map[string]any
	if err := json.Unmarshal([]byte(body), &incidents); err != nil || incidents == nil {
		return unknownResult("", parseErrorMessage)
	}

	ongoing := make([]map[string]any, 0, len(incidents))
	for _, inc := range incidents {
		if inc == nil {
			return unknownResult("", parseErrorMessage)
		}
		end, hasEnd := inc["end"]
		if !hasEnd || end == nil || truthy(inc["currently_affected_locations"]) {
			ongoing = append(ongoing, inc)
		}
	}

	if len(ongoing) == 0 {
		return withMessage(StatusOperational, "No ongoing incidents")
	}

	desc, ok := ongoing[0]["external_desc"].(string)
	if !ok {
		desc = "Unknown issue"
	}
	count := len(ongoing)

	result := withMessage(StatusDegraded, desc)
	result.IncidentCount = &count
	return result
}

// CloudflareClassifier classifies the Cloudflare Statuspage summary API,
// {"status": {"indicator": "...", "description": "..."}}.
//
// The indicator is mapped with [MapIndicator] and the description becomes
// the message, even when empty. A missing indicator is treated as "unknown".
// A body that is not a JSON object of that shape yields [StatusUnknown] with
// the error "Could not parse status response".
var CloudflareClassifier Classifier = func(body string) CheckResult {
	var doc struct {
		Status *struct {
			Indicator   *string `json:"indicator"`
			Description *string `json:"description"`
		} `json:"status"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return unknownResult("", parseErrorMessage)
	}

	indicator := string(StatusUnknown)
	description := ""
	if doc.Status != nil {
		if doc.Status.Indicator != nil {
			indicator = *doc.Status.Indicator
		}
		if doc.Status.Description != nil {
			description = *doc.Status.Description
		}
	}

	return withMessage(MapIndicator(indicator), description)
}

// indicatorStatus maps Cloudflare severity indicators to statuses.
var indicatorStatus = map[string]Status{
	"none":     StatusOperational,
	"minor":    StatusDegraded,
	"major":    StatusMajorOutage,
	"critical": StatusCriticalOutage,
}

// MapIndicator maps a Cloudflare indicator to a [Status].
//
//   - "none" → [StatusOperational]
//   - "minor" → [StatusDegraded]
//   - "major" → [StatusMajorOutage]
//   - "critical" → [StatusCriticalOutage]
//
// Any other indicator passes through unchanged as the status.
func MapIndicator(indicator string) Status {
	if s, ok := indicatorStatus[indicator]; ok {
		return s
	}
	return Status(indicator)
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truthy reports whether a decoded JSON value counts as set: non-empty
// strings, arrays and objects, true, and non-zero numbers.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
