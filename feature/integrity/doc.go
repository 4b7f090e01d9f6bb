// Package integrity provides health checks for the service's own infrastructure.
//
// # Checks Provided
//
//   - Schema: the live results table matches the ResultRow model (columns, declared
//     types, composite primary key). Fix runs the GORM migration.
//   - Archive: the object storage bucket for unparseable pages exists. Fix creates it.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check (supports ?fix=true).
//   - GET /integrity/archive : Runs the archive check (supports ?fix=true).
//
// The same checks are available from the command line through the integrity command.
package integrity
