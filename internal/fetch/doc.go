// Package fetch retrieves provider status pages over HTTP.
//
// This package is internal to cloudstatus. It wraps a pooled HTTP client
// with a fixed User-Agent, a per-request timeout, a body size cap and UTF-8
// decoding, and reports every failure as a typed [Error] whose message is
// fit for display in a status line.
//
// There are no retries: one request is made per call to [Client.Fetch].
package fetch
