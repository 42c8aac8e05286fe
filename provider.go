package cloudstatus

import (
	"strings"
	"time"
)

// DefaultTimeout is the per-request timeout applied to every status fetch.
const DefaultTimeout = 10 * time.Second

// Provider is a cloud or CDN vendor whose public status surface is polled.
//
// Provider is immutable. All fields are private with getter methods, and the
// only Provider values in existence are the entries of the static table
// returned by [Providers].
type Provider struct {
	id         string
	label      string
	name       string
	url        string
	classifier Classifier
}

// ID returns the lower-case key used to select the provider on the command
// line (e.g. "aws").
func (p Provider) ID() string {
	return p.id
}

// Label returns the short name used in result lines (e.g. "AWS").
func (p Provider) Label() string {
	return p.label
}

// Name returns the provider's display name (e.g. "Amazon Web Services").
func (p Provider) Name() string {
	return p.name
}

// URL returns the status endpoint that is polled for this provider.
func (p Provider) URL() string {
	return p.url
}

// Classifier returns the function that turns the provider's status page body
// into a [CheckResult].
func (p Provider) Classifier() Classifier {
	return p.classifier
}

// providerTable is the fixed set of providers in check order.
var providerTable = [...]Provider{
	{
		id:         "aws",
		label:      "AWS",
		name:       "Amazon Web Services",
		url:        "https://health.aws.amazon.com/health/status",
		classifier: AWSClassifier,
	},
	{
		id:         "gcp",
		label:      "GCP",
		name:       "Google Cloud Platform",
		url:        "https://status.cloud.google.com/incidents.json",
		classifier: GCPClassifier,
	},
	{
		id:         "azure",
		label:      "Azure",
		name:       "Microsoft Azure",
		url:        "https://azure.status.microsoft/en-us/status",
		classifier: AzureClassifier,
	},
	{
		id:         "cloudflare",
		label:      "Cloudflare",
		name:       "Cloudflare",
		url:        "https://www.cloudflarestatus.com/api/v2/status.json",
		classifier: CloudflareClassifier,
	},
}

// Providers returns a copy of the provider table in its fixed check order.
func Providers() []Provider {
	cp := make([]Provider, len(providerTable))
	copy(cp, providerTable[:])
	return cp
}

// LookupProvider finds a provider by id, ignoring case.
// The second return value is false if no provider has that id.
func LookupProvider(id string) (Provider, bool) {
	key := strings.ToLower(id)
	for _, p := range providerTable {
		if p.id == key {
			return p, true
		}
	}
	return Provider{}, false
}

// ProviderIDs returns the ids of all providers in check order.
func ProviderIDs() []string {
	ids := make([]string, len(providerTable))
	for i, p := range providerTable {
		ids[i] = p.id
	}
	return ids
}
