// Package adapters contains thin wrappers that unify the pgx pool, database/sql
// and sqlx database handles behind one DBAdapter interface so the engine can be
// written once against it.
package adapters
