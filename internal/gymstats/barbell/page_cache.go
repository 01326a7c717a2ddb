package barbell

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

// PageCache keeps rendered barbell pages. A page only depends on the
// requested weights and the selected bar, so those make the key.
type PageCache struct {
	cache *freecache.Cache
	ttl   time.Duration
}

func NewPageCache(sizeMegabytes int, ttl time.Duration) *PageCache {
	megabyte := 1024 * 1024
	return &PageCache{
		cache: freecache.NewCache(sizeMegabytes * megabyte),
		ttl:   ttl,
	}
}

func PageCacheKey(bar plates.BarSpec, weights []float64) string {
	formatted := make([]string, 0, len(weights))
	for _, w := range weights {
		formatted = append(formatted, plates.FormatWeight(w))
	}
	return fmt.Sprintf("page::bar=%s::weights=%s", bar.Label(), strings.Join(formatted, ","))
}

func (c *PageCache) Get(key string) ([]byte, bool) {
	page, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("page cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return page, true
}

func (c *PageCache) Set(key string, page []byte) {
	if err := c.cache.Set([]byte(key), page, int(c.ttl.Seconds())); err != nil {
		log.Warnf("page cache set [%s], %d bytes: %s", key, len(page), err)
	}
}

func (c *PageCache) Clear() {
	c.cache.Clear()
}

func (c *PageCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
