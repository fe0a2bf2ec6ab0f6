package main

import (
	"flag"
	"log"
	"net/http"

	"geogrid-service/api"
	"geogrid-service/cache"
	"geogrid-service/config"
	"geogrid-service/database"
	"geogrid-service/geogrid"
	"geogrid-service/migration"
	"geogrid-service/store"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	// Initialize configuration
	config.InitConfig()

	if *migrateOnly {
		if err := migration.RunMigrations(); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		return
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal(err)
	}

	// Initialize Redis
	if err := cache.InitRedis(); err != nil {
		log.Fatal(err)
	}

	// Initialize the alternate spatial indexes
	geogrid.InitRTreeIndex()
	geogrid.InitQuadtree(geogrid.QuadtreeBounds{MinLat: -90, MinLng: -180, MaxLat: 90, MaxLng: 180})

	// Build the grid index and load persisted entities
	gridCfg := config.Cfg.Grid
	if gridCfg.Technique != "" {
		geogrid.SetDefaultTechnique(geogrid.IndexingTechnique(gridCfg.Technique))
	}
	store.InitStore(gridCfg.Precision, gridCfg.Radius, gridCfg.Verbose)
	if err := store.S.LoadFromDB(database.DB); err != nil {
		log.Fatal(err)
	}

	// Register routes
	router := api.RegisterRoutes()

	// Start the server
	log.Println("Server started on :8080")
	log.Fatal(http.ListenAndServe(":8080", router))
}
