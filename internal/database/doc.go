// Package database provides the store connections used by the repositories.
//
// Two document stores are supported:
//
//   - SurrealDB, reached through the Database interface (Query, QueryOne,
//     Execute). Connect also defines the tables and the unique email index.
//   - MongoDB, through Mongo, which hands out collections and creates the
//     unique email index on connect.
//
// # Error Handling
//
// Repositories translate backend failures into the package errors:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrInvalidID: Identifier the backend cannot parse
//   - ErrValidation: Record rejected by schema rules
//   - ErrConnection, ErrQuery: transport and query failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
