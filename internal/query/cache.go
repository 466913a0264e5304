package query

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is a snapshot of one cached read.
type Entry struct {
	Key       Key
	Value     any
	Err       error
	Status    Status
	Stale     bool
	UpdatedAt time.Time
}

func (e Entry) Loading() bool {
	return e.Status == StatusLoading
}

type Listener func(Entry)

type entry struct {
	Entry
	gen int
}

// Client caches query results for one tab.
type Client struct {
	mu        sync.Mutex
	entries   map[string]*entry
	listeners map[string]map[uint64]Listener
	nextID    uint64
	mutating  map[string]int
	// epoch counts resets. Results fetched under an older epoch are dropped.
	epoch int

	group     singleflight.Group
	staleTime time.Duration
	now       func() time.Time
}

// NewClient returns a cache whose successful entries stay fresh for
// staleTime. A zero staleTime refetches on every read.
func NewClient(staleTime time.Duration) *Client {
	return &Client{
		entries:   make(map[string]*entry),
		listeners: make(map[string]map[uint64]Listener),
		mutating:  make(map[string]int),
		staleTime: staleTime,
		now:       time.Now,
	}
}

func (c *Client) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{Key: key, Status: StatusIdle}, false
	}
	return e.Entry, true
}

// Keys returns the cached keys in order.
func (c *Client) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Invalidate marks every entry selected by prefix stale and returns how many
// were marked. In-flight fetches for those entries will not count as fresh.
func (c *Client) Invalidate(prefix string) int {
	c.mu.Lock()
	var notify []func()
	n := 0
	for k, e := range c.entries {
		if !matches(k, prefix) {
			continue
		}
		e.Stale = true
		e.gen++
		n++
		notify = append(notify, c.notifyLocked(k, e.Entry)...)
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return n
}

// Reset drops every entry, for example after the session ends.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.epoch++
}

// Subscribe calls l on every change of the entry for key.
func (c *Client) Subscribe(key Key, l Listener) (unsubscribe func()) {
	k := key.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if c.listeners[k] == nil {
		c.listeners[k] = make(map[uint64]Listener)
	}
	c.listeners[k][id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners[k], id)
			if len(c.listeners[k]) == 0 {
				delete(c.listeners, k)
			}
		})
	}
}

func (c *Client) IsMutating(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mutating[name] > 0
}

func (c *Client) busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.mutating {
		if n > 0 {
			return true
		}
	}
	return false
}

func (c *Client) notifyLocked(k string, snapshot Entry) []func() {
	out := make([]func(), 0, len(c.listeners[k]))
	for _, l := range c.listeners[k] {
		l := l
		out = append(out, func() { l(snapshot) })
	}
	return out
}

// Fetch returns the cached value for key while it is fresh and otherwise
// calls fn. Concurrent fetches of the same key share one call, which runs
// detached from the cancellation of whichever caller started it. A result
// fetched across a Reset is returned but not cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	k := key.String()

	c.mu.Lock()
	e, ok := c.entries[k]
	if ok && c.freshLocked(e) {
		if v, ok := e.Value.(T); ok {
			c.mu.Unlock()
			return v, nil
		}
	}
	if !ok {
		e = &entry{Entry: Entry{Key: key}}
		c.entries[k] = e
	}
	e.Status = StatusLoading
	gen, epoch := e.gen, c.epoch
	notify := c.notifyLocked(k, e.Entry)
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(fmt.Sprintf("%s#%d#%d", k, epoch, gen), func() (any, error) {
		return fn(shared)
	})

	c.mu.Lock()
	e, ok = c.entries[k]
	if !ok || c.epoch != epoch {
		c.mu.Unlock()
		return result[T](v, err)
	}
	if err != nil {
		e.Status = StatusError
		e.Err = err
		e.Stale = true
	} else {
		e.Status = StatusSuccess
		e.Value = v
		e.Err = nil
		e.UpdatedAt = c.now()
		e.Stale = e.gen != gen
	}
	notify = c.notifyLocked(k, e.Entry)
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return result[T](v, err)
}

func result[T any](v any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

func (c *Client) freshLocked(e *entry) bool {
	if e.Status != StatusSuccess || e.Stale {
		return false
	}
	return c.now().Sub(e.UpdatedAt) < c.staleTime
}
