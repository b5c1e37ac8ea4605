// Package utils 进程内缓存
package utils

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// 各业务缓存的存活时间
const (
	SearchCacheTTL = 5 * time.Minute // 角色搜索结果，/addchar 后整体作废
	BanCacheTTL    = time.Minute     // 封禁名单查询，/ban /unban 即时失效
)

// store 进程内缓存，条目各带 TTL
var store = cache.New(SearchCacheTTL, 15*time.Minute)

// CacheGet 读取缓存
func CacheGet(key string) (interface{}, bool) {
	return store.Get(key)
}

// CacheSet 写入缓存
func CacheSet(key string, value interface{}, ttl time.Duration) {
	store.Set(key, value, ttl)
}

// CacheDelete 删除指定键
func CacheDelete(key string) {
	store.Delete(key)
}

// CacheFlush 清空全部缓存
func CacheFlush() {
	store.Flush()
}
