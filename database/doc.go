// Package database provides connection management, migrations, model
// registration, query hooks, store error classification and logging built
// on top of Bun.
package database
