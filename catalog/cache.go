package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"birdpacker/models"
	"birdpacker/rdx"
)

const (
	productCacheKey = "catalog:products"
	productCacheTTL = 5 * time.Minute
)

// cachedProducts returns the full product collection from Redis, or
// nil on a miss. Cache failures degrade to a Mongo read.
func cachedProducts(ctx context.Context) []models.Product {
	raw, err := rdx.Conn.Get(ctx, productCacheKey).Result()
	if err != nil {
		return nil
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Println("product cache decode error:", err)
		return nil
	}
	return products
}

func cacheProducts(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := rdx.Conn.Set(ctx, productCacheKey, data, productCacheTTL).Err(); err != nil {
		log.Println("product cache set error:", err)
	}
}

// invalidateProductCache is called after every product or category
// mutation.
func invalidateProductCache(ctx context.Context) {
	if err := rdx.Conn.Del(ctx, productCacheKey).Err(); err != nil {
		log.Println("product cache invalidate error:", err)
	}
}
