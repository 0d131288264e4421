// README: Best-effort Redis cache for provider-resolved coordinates.
package geo

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"caravan/internal/types"
)

const (
	addrKeyPrefix = "geo:addr:%s"
	// Resolved addresses move rarely; a week keeps repeat batch runs cheap.
	cacheTTL = 7 * 24 * time.Hour
)

// Store caches provider geocode results. All methods are best effort and
// nil-safe: a nil Store or a Redis error never affects resolution, and
// locally approximated coordinates are never cached.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) GetCoordinates(ctx context.Context, query string) (types.Point, bool) {
	if s == nil || s.redis == nil {
		return types.Point{}, false
	}
	val, err := s.redis.Get(ctx, addrKey(query)).Result()
	if err == redis.Nil {
		return types.Point{}, false
	}
	if err != nil {
		log.Printf("geocode cache read failed: %v", err)
		return types.Point{}, false
	}
	parts := strings.SplitN(val, ",", 2)
	if len(parts) != 2 {
		return types.Point{}, false
	}
	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lng, errLng := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLng != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}

func (s *Store) PutCoordinates(ctx context.Context, query string, p types.Point) {
	if s == nil || s.redis == nil {
		return
	}
	val := strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
	if err := s.redis.Set(ctx, addrKey(query), val, cacheTTL).Err(); err != nil {
		log.Printf("geocode cache write failed: %v", err)
	}
}

func addrKey(query string) string {
	return fmt.Sprintf(addrKeyPrefix, strings.ToLower(strings.Join(strings.Fields(query), " ")))
}
