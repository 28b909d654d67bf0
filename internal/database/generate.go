package database

// sqlc reads the schema straight from the migration files.
//
// To regenerate the query code:
//   go generate ./internal/database

//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
