package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const catalogVersionKey = "catalog:version"

// CatalogKey 根据查询参数构建带版本号的目录缓存 key
func CatalogKey(ctx context.Context, kind string, parts ...string) string {
	version := catalogVersion(ctx)
	sum := sha1.Sum([]byte(strings.Join(parts, "\x1f")))
	return fmt.Sprintf("catalog:v%d:%s:%s", version, kind, hex.EncodeToString(sum[:8]))
}

// GetCatalog 读取目录缓存
func GetCatalog(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// SetCatalog 写入目录缓存
func SetCatalog(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, key, value, ttl)
}

// InvalidateCatalog 递增目录版本号，使旧缓存全部失效
func InvalidateCatalog(ctx context.Context) error {
	_, err := Incr(ctx, catalogVersionKey)
	return err
}

func catalogVersion(ctx context.Context) int64 {
	if !Enabled() {
		return 0
	}
	val, err := redisClient.Get(ctx, buildKey(catalogVersionKey)).Result()
	if err != nil {
		return 0
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return version
}
