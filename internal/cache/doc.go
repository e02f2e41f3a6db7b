// Package cache provides a bounded, thread-safe LRU cache.
//
//	labels := cache.New[string, *image.NRGBA](256)
//	img := labels.GetOrCreate("3,7", func() *image.NRGBA { return render("3,7") })
//
// When an insert exceeds the capacity, the least recently used entry is
// evicted. Cache must not be copied after creation (it contains a mutex).
package cache
