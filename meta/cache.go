package meta

import (
	"container/list"
	"sync"
)

// patternCache is the process-wide compiled-pattern cache: bounded LRU
// eviction plus single-flight de-duplication, so concurrent callers
// compiling the same pattern for the first time share one compilation
// instead of racing to build it N times. Failed compilations are never
// cached.
type patternCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element // pattern -> LRU node
	order    *list.List               // most-recently-used at the front
	inflight map[string]*inflightCall

	hits   uint64
	misses uint64
}

type cacheNode struct {
	pattern string
	engine  *Engine
}

type inflightCall struct {
	done   chan struct{}
	engine *Engine
	err    error
}

func newPatternCache(capacity int) *patternCache {
	return &patternCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		inflight: make(map[string]*inflightCall),
	}
}

// getOrCompile returns the cached Engine for pattern, compiling it (once,
// even under concurrent callers) and inserting it into the cache on a
// miss.
func (c *patternCache) getOrCompile(pattern string, config Config) (*Engine, error) {
	c.mu.Lock()
	if el, ok := c.entries[pattern]; ok {
		c.order.MoveToFront(el)
		c.hits++
		e := el.Value.(*cacheNode).engine
		c.mu.Unlock()
		return e, nil
	}
	if call, ok := c.inflight[pattern]; ok {
		c.mu.Unlock()
		<-call.done
		return call.engine, call.err
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[pattern] = call
	c.misses++
	c.mu.Unlock()

	engine, err := CompileWithConfig(pattern, config)
	call.engine, call.err = engine, err
	close(call.done)

	c.mu.Lock()
	delete(c.inflight, pattern)
	if err == nil {
		c.insertLocked(pattern, engine)
	}
	c.mu.Unlock()

	return engine, err
}

func (c *patternCache) insertLocked(pattern string, engine *Engine) {
	if c.capacity <= 0 {
		return
	}
	if el, ok := c.entries[pattern]; ok {
		el.Value.(*cacheNode).engine = engine
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&cacheNode{pattern: pattern, engine: engine})
	c.entries[pattern] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheNode).pattern)
		}
	}
}

// defaultCache is the package-level cache the root module's convenience
// functions (rex.CompileCached, rex.MustCompileCached) route through.
var defaultCache = newPatternCache(DefaultConfig().CacheSize)

// CompileCached compiles pattern via the process-wide cache, reusing an
// already-compiled Engine for a pattern seen before.
func CompileCached(pattern string) (*Engine, error) {
	return defaultCache.getOrCompile(pattern, DefaultConfig())
}
