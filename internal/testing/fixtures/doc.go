// Package fixtures holds builders for users, registration payloads and jobs
// shared by the store, service and HTTP tests.
//
// Builders never touch a database; tests save the result through whatever
// store they exercise.
package fixtures
