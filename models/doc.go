// Package models defines the person-like entities persisted by roster and the
// partial-update merge rule applied to them.
package models
