// Package domain defines the core business entities of the fleet API:
// users, vehicle-usage historics and their GPS coordinate trails.
package domain
