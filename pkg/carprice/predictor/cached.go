package predictor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/patrickmn/go-cache"
)

// Cached memoizes the prices returned by another Predictor, keyed by feature vector
type Cached struct {
	next  Predictor
	cache *cache.Cache
}

// NewCached wraps next with a cache whose entries expire after ttl
func NewCached(next Predictor, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Predict returns a cached price or asks the wrapped predictor. Failures are not cached.
func (c *Cached) Predict(ctx context.Context, fv dal.FeatureVector) (float64, error) {
	key := vectorKey(fv)
	if price, found := c.cache.Get(key); found {
		return price.(float64), nil
	}

	price, err := c.next.Predict(ctx, fv)
	if err != nil {
		return 0, err
	}
	c.cache.SetDefault(key, price)
	return price, nil
}

// Len returns the number of cached prices
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

func vectorKey(fv dal.FeatureVector) string {
	parts := make([]string, len(fv))
	for i, v := range fv {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
