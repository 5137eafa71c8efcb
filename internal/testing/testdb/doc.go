// Package testdb provides isolated live databases for integration tests.
//
// Each call gets its own SurrealDB namespace or MongoDB database, which is
// removed when the test ends:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.NewSurreal(t)
//	    repo := repository.NewJobRepository(tdb.DB)
//	}
//
// # Environment
//
// Tests skip unless the matching variable is set:
//
//   - TEST_SURREAL_HOST (plus optional TEST_SURREAL_PORT, TEST_SURREAL_USER,
//     TEST_SURREAL_PASSWORD)
//   - TEST_MONGO_URI
package testdb
