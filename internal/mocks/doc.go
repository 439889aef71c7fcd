// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these shared
// implementations keep mock behavior consistent across test packages. Every
// mock exposes per-method function fields (CreateFn, ValidateTokenFn, ...);
// when a field is nil the mock falls back to simple in-memory defaults.
package mocks
