// Package repository provides a generic repository abstraction built on Bun
// for finding, saving and deleting person-like records.
package repository
