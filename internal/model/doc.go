// Package model defines the domain entities of the job board API.
//
//   - User: account with a bcrypt password hash that is never serialized
//   - Job: posting owned by exactly one user
//   - Attachment: object-storage reference appended to a job
//   - APIError: the {"error": "..."} response body used for every failure
//
// Schema rules live on the structs as validator tags and are checked by
// Validate before a record is written to any store.
package model
