package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func RegisterRoutes() http.Handler {
	router := mux.NewRouter()

	// Entity endpoints
	router.HandleFunc("/entities", CreateEntity).Methods("POST")
	router.HandleFunc("/entities/{key}", GetEntity).Methods("GET")

	// Search endpoints
	router.HandleFunc("/search/near", NearPoint).Methods("GET")
	router.HandleFunc("/search/near/{key}", NearKey).Methods("GET")
	router.HandleFunc("/search/closest", Closest).Methods("GET")
	router.HandleFunc("/search/nearest", Nearest).Methods("GET")

	// Distance endpoint
	router.HandleFunc("/distance", DistanceHandler).Methods("POST")

	// Technique comparison endpoint
	router.HandleFunc("/geoindex", GeoIndexingHandler).Methods("GET")

	// Add CORS support
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return cors(router)
}
