// resourced is the generic REST resource store the Eventdesk web app
// consumes. It serves the users and events collections with query-string
// filtering, PATCH field merge, and server-assigned ids.
package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	"eventdesk/internal/adapters/resourceapi"
	"eventdesk/internal/adapters/storage"
	"eventdesk/internal/adapters/storage/collection"
	"eventdesk/internal/config"
)

func main() {
	cfg, err := config.LoadResourced()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := collection.NewSQLiteStore(db)
	api := resourceapi.New(store, "users", "events")

	log.Printf("resourced starting on %s (db=%s)", cfg.Addr, cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
