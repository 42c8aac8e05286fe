package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/cloudstatus"
)

// Header is the title of the text report.
const Header = "Cloud Provider Status Check"

// ruleWidth is the width of the separator rules in the text report.
const ruleWidth = 60

// timestampLayout formats the report time; it is always rendered in UTC.
const timestampLayout = "2006-01-02 15:04:05"

// Format selects how a [Document] is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, or yaml)", s)
	}
}

// Document is one complete run: the time it started and its results in
// check order.
type Document struct {
	CheckedAt time.Time
	Results   []cloudstatus.CheckResult
}

// Summary returns the aggregate outcome of the run.
func (d Document) Summary() cloudstatus.Summary {
	return cloudstatus.Summarize(d.Results)
}

// Render writes the document to w in the given format.
func Render(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatText, "":
		return renderText(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toView(doc)); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toView(doc)); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderText writes the human-readable report:
//
//	Cloud Provider Status Check - 2006-01-02 15:04:05 UTC
//	------------------------------------------------------------
//	[OK] AWS: OPERATIONAL - All services operating normally
//	...
//	------------------------------------------------------------
//	SUMMARY: All checked providers operational
func renderText(w io.Writer, doc Document) error {
	rule := strings.Repeat("-", ruleWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s UTC\n", Header, doc.CheckedAt.UTC().Format(timestampLayout))
	b.WriteString(rule + "\n")
	for _, r := range doc.Results {
		b.WriteString(cloudstatus.FormatStatus(r) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(doc.Summary().Line() + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// documentView is the serialised form of a Document.
type documentView struct {
	CheckedAt time.Time    `json:"checked_at" yaml:"checked_at"`
	Results   []resultView `json:"results" yaml:"results"`
	Issues    int          `json:"issues" yaml:"issues"`
	Summary   string       `json:"summary" yaml:"summary"`
}

// resultView is the serialised form of a CheckResult.
type resultView struct {
	Provider      string  `json:"provider" yaml:"provider"`
	Status        string  `json:"status" yaml:"status"`
	Message       *string `json:"message,omitempty" yaml:"message,omitempty"`
	Error         *string `json:"error,omitempty" yaml:"error,omitempty"`
	IncidentCount *int    `json:"incident_count,omitempty" yaml:"incident_count,omitempty"`
	URL           string  `json:"url,omitempty" yaml:"url,omitempty"`
	LatencyMs     int64   `json:"latency_ms" yaml:"latency_ms"`
}

func toView(doc Document) documentView {
	summary := doc.Summary()
	results := make([]resultView, len(doc.Results))
	for i, r := range doc.Results {
		results[i] = resultView{
			Provider:      r.Provider,
			Status:        r.Status.String(),
			Message:       r.Message,
			Error:         r.Error,
			IncidentCount: r.IncidentCount,
			URL:           r.URL,
			LatencyMs:     r.Latency.Milliseconds(),
		}
	}
	return documentView{
		CheckedAt: doc.CheckedAt.UTC(),
		Results:   results,
		Issues:    summary.Issues,
		Summary:   summary.Line(),
	}
}
