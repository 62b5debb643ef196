package cache

// Policy is the storage and eviction strategy of a CompositionCache.
// Both *Cache and *ShardedCache implement it.
type Policy[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string) bool
	Clear()
	Len() int
	Stats() Stats
}

var (
	_ Policy[int] = (*Cache[string, int])(nil)
	_ Policy[int] = (*ShardedCache[string, int])(nil)
)
