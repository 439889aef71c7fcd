// Package store defines the persistence interfaces and shared store errors.
// Implementations live in internal/platform/postgres.
package store
