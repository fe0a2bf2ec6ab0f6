package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"geogrid-service/geogrid"
	"geogrid-service/models"
)

// Store owns the grid index behind a read-write lock. The grid itself is
// unsynchronized (build phase then read phase); the Store is the external
// lock that lets HTTP writes coexist with reads after startup.
type Store struct {
	mu   sync.RWMutex
	grid *geogrid.Grid
}

var S *Store

// InitStore builds the global store. A radius > 0 drives precision
// selection, otherwise the explicit precision is used.
func InitStore(precision uint, radius float64, verbose bool) {
	var grid *geogrid.Grid
	if radius > 0 {
		grid = geogrid.NewGridWithRadius(radius, verbose)
	} else {
		grid = geogrid.NewGrid(precision, verbose)
	}
	S = &Store{grid: grid}
}

// Precision returns the grid's fixed cell code length.
func (s *Store) Precision() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Precision()
}

// Add indexes an entity in the grid and the alternate indexes. Invalid
// coordinates are skipped by the grid itself.
func (s *Store) Add(key string, p geogrid.Point) {
	s.mu.Lock()
	s.grid.Add(key, p)
	s.mu.Unlock()

	if geogrid.ValidPoint(p) {
		geogrid.IndexPoint(key, p)
	}
}

// CellOf returns the cell recorded for a key.
func (s *Store) CellOf(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.CellOf(key)
}

// PointOf returns the point recorded for a key.
func (s *Store) PointOf(key string) (geogrid.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.PointOf(key)
}

// FindNearPoint runs a radius search around a point.
func (s *Store) FindNearPoint(p *geogrid.Point, radius float64, doubleCheck bool) []geogrid.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.FindNearPoint(p, radius, doubleCheck)
}

// FindNearKey runs a radius search around an indexed key.
func (s *Store) FindNearKey(key string, radius float64, doubleCheck bool) []geogrid.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.FindNearKey(key, radius, doubleCheck)
}

// FindClosestFromPoint runs a top-N search from a point.
func (s *Store) FindClosestFromPoint(p geogrid.Point, n int, doubleCheck bool, restrictTo []string) ([]geogrid.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.FindClosestFromPoint(p, n, doubleCheck, restrictTo)
}

// SearchNearbyWithRetries runs the technique-comparison search.
func (s *Store) SearchNearbyWithRetries(p geogrid.Point, technique geogrid.IndexingTechnique, maxRetries int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return geogrid.SearchNearbyWithRetries(s.grid, p, technique, maxRetries)
}

// LoadFromDB rebuilds the index from the entities table.
func (s *Store) LoadFromDB(db *sql.DB) error {
	rows, err := db.Query(`SELECT key, latitude, longitude FROM entities`)
	if err != nil {
		return fmt.Errorf("failed to load entities: %v", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var e models.Entity
		if err := rows.Scan(&e.Key, &e.Latitude, &e.Longitude); err != nil {
			return fmt.Errorf("failed to scan entity: %v", err)
		}
		s.Add(e.Key, geogrid.Point{Lat: e.Latitude, Lng: e.Longitude})
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	log.Printf("Loaded %d entities into the grid index.", count)
	return nil
}
