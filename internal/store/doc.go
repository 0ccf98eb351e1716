// Package store defines the persistence contracts of the marketplace: one
// interface per entity (users, rooms, amenities, categories, reviews,
// experiences), the shared sentinel errors, paging, and the transaction
// helper services use to group writes. Implementations live in
// internal/platform/postgres.
package store
