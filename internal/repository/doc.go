// Package repository implements the user and job stores on SurrealDB.
//
// Repositories speak SurrealQL through database.Database and convert the
// generic records the driver returns into model types. Record ids are
// exposed to clients without their table prefix ("job:abc" becomes "abc").
//
// Lookups return (nil, nil) when a record is absent; malformed ids yield
// database.ErrInvalidID and unique index violations database.ErrDuplicate.
//
// Sibling packages mongodb and memory implement the same contracts on
// MongoDB and in process memory.
package repository
