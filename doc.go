// Package roster provides a generic CRUD service over person-like records
// (students, instructors) stored through a Bun-backed repository.
package roster
