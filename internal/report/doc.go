// Package report renders the results of a cloudstatus run.
//
// This package is internal to cloudstatus. The text format is the classic
// human-readable report; JSON and YAML carry the same information for
// scripts.
package report
