// Package match provides the output data model for team schedule, roster and results data.
//
// The match package defines the JSON envelope written for the static team site
// (metadata, roster, schedule, results), the date and time normalization rules
// applied to upstream schedule fields, and snapshot diffing so that a run can
// report which matches were added, removed or changed since the previous run.
package match
