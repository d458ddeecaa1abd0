// Package types holds small generic value types shared across roster.
package types
