package tourapi

import (
	"container/list"
	"sync"
	"time"
)

// responseCache 以完整请求 URL 为键的 TTL + LRU 缓存，仅保存 resultCode=0000 的响应体
type responseCache struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	ll    *list.List // 最近使用的在队首
	items map[string]*list.Element
	now   func() time.Time
}

type cacheEntry struct {
	key  string
	body []byte
	exp  time.Time
}

func newResponseCache(maxEntries int, ttl time.Duration) *responseCache {
	if ttl <= 0 {
		return nil
	}
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &responseCache{
		cap:   maxEntries,
		ttl:   ttl,
		ll:    list.New(),
		items: make(map[string]*list.Element, maxEntries),
		now:   time.Now,
	}
}

func (c *responseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	en := el.Value.(cacheEntry)
	if !c.now().Before(en.exp) {
		c.ll.Remove(el)
		delete(c.items, key)
		return nil, false
	}
	c.ll.MoveToFront(el)
	return en.body, true
}

func (c *responseCache) Put(key string, body []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		el.Value = cacheEntry{key: key, body: body, exp: exp}
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(cacheEntry{key: key, body: body, exp: exp})
	for c.ll.Len() > c.cap {
		tail := c.ll.Back()
		c.ll.Remove(tail)
		delete(c.items, tail.Value.(cacheEntry).key)
	}
}

func (c *responseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
