// Package service implements the business rules of the job board API.
//
// Services sit between the HTTP handlers and the stores. They validate input,
// hash and check credentials, issue and verify tokens, and enforce that only
// the owner of a job may change it.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Store interfaces (UserRepository, JobRepository) are declared here and
//     satisfied by the memory, SurrealDB and MongoDB adapters
//   - Context is passed through for cancellation and request-scoped values
//
// # Error Handling
//
// Every failure a caller can act on is a sentinel from errors.go. Store
// errors are translated before they leave the package:
//
//	if errors.Is(err, service.ErrNotJobOwner) {
//	    // 401
//	}
//
// ErrUpdateForbidden and ErrDeleteForbidden both wrap ErrNotJobOwner.
//
// # Example Usage
//
//	jobs := NewJobService(JobServiceConfig{
//	    JobRepo:        jobRepository,
//	    Uploader:       uploader,
//	    KeyPrefix:      "jobs",
//	    MaxUploadBytes: 2_000_000,
//	})
//	job, err := jobs.Update(ctx, jobID, userID, patch)
package service
