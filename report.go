package cloudstatus

import (
	"fmt"
	"strings"
)

// statusMarkers maps statuses to the bracketed marker shown in result lines.
var statusMarkers = map[Status]string{
	StatusOperational:    "[OK]",
	StatusDegraded:       "[WARN]",
	StatusMajorOutage:    "[DOWN]",
	StatusCriticalOutage: "[CRITICAL]",
	StatusUnknown:        "[?]",
}

// Marker returns the display marker for a status. Statuses without a
// dedicated marker, such as unmapped Cloudflare indicators, get "[?]".
func Marker(s Status) string {
	if m, ok := statusMarkers[s]; ok {
		return m
	}
	return "[?]"
}

// FormatStatus renders a result as a single line:
//
//	<marker> <provider>: <STATUS> - <message> (Error: <error>)
//
// The message and error parts are included only when present.
func FormatStatus(r CheckResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", Marker(r.Status), r.Provider, strings.ToUpper(string(r.Status)))
	if r.Message != nil {
		b.WriteString(" - ")
		b.WriteString(*r.Message)
	}
	if r.Error != nil {
		b.WriteString(" (Error: ")
		b.WriteString(*r.Error)
		b.WriteString(")")
	}
	return b.String()
}

// Summary is the aggregate outcome of a run.
type Summary struct {
	// Checked is the number of results summarised.
	Checked int

	// Issues counts results whose status is neither operational nor unknown.
	Issues int
}

// Summarize counts the results that report issues.
func Summarize(results []CheckResult) Summary {
	s := Summary{Checked: len(results)}
	for _, r := range results {
		if r.Status.IsIssue() {
			s.Issues++
		}
	}
	return s
}

// Healthy reports whether no result reported an issue.
func (s Summary) Healthy() bool {
	return s.Issues == 0
}

// ExitCode returns the process exit code for the run: 0 when healthy,
// 1 when at least one provider reports issues.
func (s Summary) ExitCode() int {
	if s.Healthy() {
		return 0
	}
	return 1
}

// Line returns the one-line summary printed at the end of the report.
func (s Summary) Line() string {
	if s.Healthy() {
		return "SUMMARY: All checked providers operational"
	}
	return fmt.Sprintf("SUMMARY: %d provider(s) reporting issues", s.Issues)
}
