package recommendation

import (
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	latestEventCacheSize = 10 * 1024 * 1024 // 10 MB
	latestEventTTL       = 60 * 60          // seconds
)

// LatestEventCache keeps the most recent recommendation event per lift in
// memory, the last-prescription lookup is the hottest read of the ios app.
// It is a read-through cache, a fresh insert invalidates the key.
type LatestEventCache struct {
	cache *freecache.Cache
}

func NewLatestEventCache() *LatestEventCache {
	return &LatestEventCache{
		cache: freecache.NewCache(latestEventCacheSize),
	}
}

func (c *LatestEventCache) Get(userID, exerciseID string) (*RecommendationEvent, bool) {
	data, err := c.cache.Get(cacheKey(userID, exerciseID))
	if err != nil {
		return nil, false
	}
	var event RecommendationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		log.Warnf("latest event cache, unmarshal event [%s/%s]: %s", userID, exerciseID, err)
		return nil, false
	}
	return &event, true
}

func (c *LatestEventCache) Set(event RecommendationEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Warnf("latest event cache, marshal event %s: %s", event.ID, err)
		return
	}
	if err := c.cache.Set(cacheKey(event.UserID, event.ExerciseID), data, latestEventTTL); err != nil {
		log.Warnf("latest event cache, set event %s: %s", event.ID, err)
	}
}

func (c *LatestEventCache) Invalidate(userID, exerciseID string) {
	c.cache.Del(cacheKey(userID, exerciseID))
}

func cacheKey(userID, exerciseID string) []byte {
	return []byte(fmt.Sprintf("%s::%s", userID, exerciseID))
}
