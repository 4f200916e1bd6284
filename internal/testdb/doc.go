// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it skip themselves when no database URL is set.
//
// Typical use in an integration test:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		store := postgres.NewPostgresWorldStore(tx, nil)
//		// ...
//	})
package testdb
