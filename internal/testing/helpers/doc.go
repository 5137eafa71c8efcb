// Package helpers holds shared test suites for the store adapters.
//
// RunUserStoreTests and RunJobStoreTests pin down the behavior every
// credential and job store must agree on, so the memory, SurrealDB and
// MongoDB adapters are held to one contract:
//
//	helpers.RunUserStoreTests(t, memory.NewUserRepository())
//	helpers.RunJobStoreTests(t, memory.NewJobRepository(), helpers.JobStoreOpts{
//	    Owner:      "owner",
//	    OtherOwner: "other",
//	    MissingID:  uuid.NewString(),
//	})
package helpers
