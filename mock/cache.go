package mock

import "github.com/mwalczyk/docdive"

var _ docdive.ContentCache = (*ContentCache)(nil)

// ContentCache is a mock implementation of docdive.ContentCache.
type ContentCache struct {
	GetFn           func(key string) *docdive.DocumentContent
	SetFn           func(key string, content *docdive.DocumentContent)
	ClearFn         func()
	RemoveExpiredFn func()
}

func (c *ContentCache) Get(key string) *docdive.DocumentContent {
	return c.GetFn(key)
}

func (c *ContentCache) Set(key string, content *docdive.DocumentContent) {
	c.SetFn(key, content)
}

func (c *ContentCache) Clear() {
	c.ClearFn()
}

func (c *ContentCache) RemoveExpired() {
	c.RemoveExpiredFn()
}
