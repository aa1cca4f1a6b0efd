// Package database handles database connections.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The sqlite driver is supported as
// well so that transactional behavior can be exercised in tests without a
// MySQL server.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
