package client

import (
	"sync"

	"github.com/braunma/netbox-baseline/pkg/utils"
)

// CreatedCache remembers the objects created during this run so that later
// lookups resolve them without a round trip. In dry-run mode it is the only
// place those objects exist.
type CreatedCache struct {
	objects       map[string][]Object
	placeholderID int
	mu            sync.RWMutex
}

// NewCreatedCache creates an empty cache
func NewCreatedCache() *CreatedCache {
	return &CreatedCache{
		objects: make(map[string][]Object),
	}
}

// Record stores an object created on endpoint
func (cc *CreatedCache) Record(endpoint string, obj Object) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.objects[endpoint] = append(cc.objects[endpoint], obj)
}

// Lookup returns the object created on endpoint whose field equals value
func (cc *CreatedCache) Lookup(endpoint, field, value string) (Object, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	for _, obj := range cc.objects[endpoint] {
		if utils.GetString(obj, field) == value {
			return obj, true
		}
	}

	return nil, false
}

// NextPlaceholderID hands out decreasing negative IDs for dry-run objects
func (cc *CreatedCache) NextPlaceholderID() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.placeholderID--
	return cc.placeholderID
}
