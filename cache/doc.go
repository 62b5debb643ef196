// Package cache provides the caches used by the renderer and a
// composition cache service.
//
// Two eviction policies are available: [ShardedCache], a sharded LRU for
// hot, concurrent lookups such as gradient shaders, and [Cache], a map with
// an optional soft limit that keeps entries until it overflows. Both
// implement [Policy], which [CompositionCache] takes as its eviction policy.
package cache
