// Package cloudstatus checks the public status pages of major cloud
// providers and reports their health.
//
// The provider set is fixed: AWS, GCP, Azure and Cloudflare, always checked
// in that order. Each provider's page is fetched once, classified by a
// provider-specific [Classifier], and turned into a [CheckResult].
//
// # Quick Start
//
//	c, _ := cloudstatus.New()
//	defer c.Close()
//
//	results := c.CheckAll(ctx)
//	for _, r := range results {
//	    fmt.Println(cloudstatus.FormatStatus(r))
//	}
//	fmt.Println(cloudstatus.Summarize(results).Line())
//
// # Classification
//
// AWS and Azure publish HTML, which is classified by keyword presence. When
// no keyword matches, the provider is reported operational with the message
// "Status page accessible". GCP publishes a JSON incident feed and Cloudflare
// a JSON summary with a severity indicator (see [MapIndicator]).
//
// Classification is a best-effort heuristic over third-party content. A
// provider whose page words a disruption in an unexpected way is reported
// operational.
//
// # Errors
//
// Network failures and malformed JSON never escape a check. They produce a
// [StatusUnknown] result whose Error field holds a readable description,
// such as "Network error: timed out" or "Could not parse status response".
//
// # Architecture
//
//   - internal/fetch: HTTP GET with fixed User-Agent, timeout and size cap
//   - internal/report: text, JSON and YAML rendering of a full run
//   - config: optional YAML configuration for the CLI
//   - cmd/cloudstatus: the command-line tool
package cloudstatus
