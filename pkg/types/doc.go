// Package types defines the review record, the sentiment label and its
// deriver, the typed configuration, and the standard errors shared by the
// reviewdash packages.
package types
