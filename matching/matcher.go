package matching

import (
	"context"
	"fmt"

	"geogrid-service/cache"
	"geogrid-service/database"
	"geogrid-service/geogrid"
	"geogrid-service/models"
	"geogrid-service/store"
)

// nearbyRings bounds how far the cached-cell walk reaches around the query.
const nearbyRings = 2

// FindNearest returns the entity closest to a point among the cell buckets
// mirrored in Redis. Rings are walked outward from the query cell; the first
// ring that holds any candidates decides, with exact distance breaking ties
// inside it.
func FindNearest(lat, lng float64) (*models.Entity, error) {
	p := geogrid.Point{Lat: lat, Lng: lng}
	cell := geogrid.Encode(lat, lng, store.S.Precision())

	ctx := context.Background()

	var (
		bestKey  string
		bestDist float64
	)

	for _, ring := range geogrid.Rings(cell, nearbyRings) {
		for _, c := range ring {
			keys, err := cache.Rdb.SMembers(ctx, cache.CellKey(c)).Result()
			if err != nil {
				continue
			}
			for _, key := range keys {
				pt, err := store.S.PointOf(key)
				if err != nil {
					continue
				}
				dist := geogrid.Distance(p, pt)
				if bestKey == "" || dist < bestDist {
					bestKey = key
					bestDist = dist
				}
			}
		}
		if bestKey != "" {
			break
		}
	}

	if bestKey == "" {
		return nil, fmt.Errorf("no entities nearby")
	}

	var e models.Entity
	err := database.DB.QueryRow(
		`SELECT key, name, latitude, longitude, geohash FROM entities WHERE key=$1`,
		bestKey,
	).Scan(&e.Key, &e.Name, &e.Latitude, &e.Longitude, &e.Geohash)
	if err != nil {
		return nil, fmt.Errorf("failed to load entity %s: %v", bestKey, err)
	}

	return &e, nil
}
