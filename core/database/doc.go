// Package database handles database connections and schema inspection.
//
// It wraps GORM so the rest of the application can open either an embedded SQLite file
// (the default) or a MySQL server from the same Config.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, applies pool settings suitable for
// that driver, and pings the database within Config.TimeoutSeconds. GORM's own logger
// is silenced; failures are returned as errors for the caller to log.
//
// # Schema Inspection
//
// GetTableColumns reports the live column list of a table (PRAGMA table_info on SQLite,
// SHOW COLUMNS on MySQL). The integrity feature compares it against the expected layout
// of the results table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "results")
package database
