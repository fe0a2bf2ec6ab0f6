package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"geogrid-service/cache"
	"geogrid-service/database"
	"geogrid-service/geogrid"
	"geogrid-service/matching"
	"geogrid-service/models"
	"geogrid-service/store"
)

// CreateEntity registers a new entity: persisted to Postgres, indexed in the
// grid, and mirrored into its cell's Redis set.
func CreateEntity(w http.ResponseWriter, r *http.Request) {
	var entity models.Entity
	err := json.NewDecoder(r.Body).Decode(&entity)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	point := geogrid.Point{Lat: entity.Latitude, Lng: entity.Longitude}
	if entity.Key == "" || !geogrid.ValidPoint(point) {
		http.Error(w, "Invalid key or coordinates", http.StatusBadRequest)
		return
	}

	entity.Geohash = geogrid.Encode(entity.Latitude, entity.Longitude, store.S.Precision())

	_, err = database.DB.Exec(
		`INSERT INTO entities (key, name, latitude, longitude, geohash) VALUES ($1, $2, $3, $4, $5)`,
		entity.Key, entity.Name, entity.Latitude, entity.Longitude, entity.Geohash,
	)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && strings.Contains(pgErr.Message, "duplicate key") {
			http.Error(w, "Entity already exists", http.StatusConflict)
		} else {
			http.Error(w, "Failed to create entity", http.StatusInternalServerError)
		}
		return
	}

	store.S.Add(entity.Key, point)

	ctx := context.Background()
	cache.AddToCell(ctx, entity.Geohash, entity.Key)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entity)
}

// GetEntity fetches entity details by key.
func GetEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	var entity models.Entity
	err := database.DB.QueryRow(
		`SELECT key, name, latitude, longitude, geohash FROM entities WHERE key=$1`,
		key,
	).Scan(
		&entity.Key,
		&entity.Name,
		&entity.Latitude,
		&entity.Longitude,
		&entity.Geohash,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Entity not found", http.StatusNotFound)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entity)
}

// NearPoint answers a radius search around a lat/lng.
func NearPoint(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLatLng(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	radius, err := parseRadius(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doubleCheck := r.URL.Query().Get("double_check") == "true"

	matches := store.S.FindNearPoint(&geogrid.Point{Lat: lat, Lng: lng}, radius, doubleCheck)

	writeMatches(w, matches)
}

// NearKey answers a radius search around an indexed key. An unknown key
// yields an empty result, not an error.
func NearKey(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	radius, err := parseRadius(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doubleCheck := r.URL.Query().Get("double_check") == "true"

	matches := store.S.FindNearKey(key, radius, doubleCheck)

	writeMatches(w, matches)
}

// Closest answers a top-N search from a lat/lng, optionally restricted to a
// comma-separated candidate key set.
func Closest(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLatLng(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid n", http.StatusBadRequest)
			return
		}
	}
	doubleCheck := r.URL.Query().Get("double_check") == "true"

	var restrictTo []string
	if raw, ok := r.URL.Query()["keys"]; ok {
		restrictTo = []string{}
		for _, part := range strings.Split(raw[0], ",") {
			if part = strings.TrimSpace(part); part != "" {
				restrictTo = append(restrictTo, part)
			}
		}
	}

	matches, err := store.S.FindClosestFromPoint(geogrid.Point{Lat: lat, Lng: lng}, n, doubleCheck, restrictTo)
	if err != nil {
		// The expansion cap was hit before n candidates were found.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeMatches(w, matches)
}

// Nearest finds the single closest entity among the Redis-cached cells.
func Nearest(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLatLng(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := matching.FindNearest(lat, lng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entity)
}

// DistanceHandler computes the great-circle distance between two points.
func DistanceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat1 float64 `json:"latitude1"`
		Lng1 float64 `json:"longitude1"`
		Lat2 float64 `json:"latitude2"`
		Lng2 float64 `json:"longitude2"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	a := geogrid.Point{Lat: req.Lat1, Lng: req.Lng1}
	b := geogrid.Point{Lat: req.Lat2, Lng: req.Lng2}
	if !geogrid.ValidPoint(a) || !geogrid.ValidPoint(b) {
		http.Error(w, "Invalid coordinates", http.StatusBadRequest)
		return
	}

	response := map[string]float64{"distance_km": geogrid.Distance(a, b)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GeoIndexingHandler runs the technique-comparison search (grid, rtree or
// quadtree) with retries.
func GeoIndexingHandler(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLatLng(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	technique := geogrid.IndexingTechnique(r.URL.Query().Get("technique"))

	keys, err := store.S.SearchNearbyWithRetries(geogrid.Point{Lat: lat, Lng: lng}, technique, 5)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"technique": technique,
		"keys":      keys,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseLatLng(r *http.Request) (float64, float64, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lat")
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lng")
	}
	return lat, lng, nil
}

func parseRadius(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("radius")
	if raw == "" {
		return 20, nil
	}
	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius < 0 {
		return 0, fmt.Errorf("invalid radius")
	}
	return radius, nil
}

func writeMatches(w http.ResponseWriter, matches []geogrid.Match) {
	if matches == nil {
		matches = []geogrid.Match{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}
