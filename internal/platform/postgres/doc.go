// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, along with the
// embedded goose migrations that create the schema. Stores accept a
// store.DBTX so the same code runs on a *sql.DB or inside a transaction.
package postgres
