package services

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Operation names a guarded network call.
type Operation string

const (
	OpRegister    Operation = "register"
	OpRequestOTP  Operation = "request-otp"
	OpValidateOTP Operation = "validate-otp"
	OpSearch      Operation = "search"
	OpUpload      Operation = "upload"
)

// inflight allows one running call per operation. A call whose key equals
// the running one joins it and gets the same result; a call with another key
// fails with ErrInProgress.
type inflight struct {
	group singleflight.Group

	mu     sync.Mutex
	active map[Operation]*flight
}

type flight struct {
	key     string
	callers int
}

func newInflight() *inflight {
	return &inflight{active: make(map[Operation]*flight)}
}

func (g *inflight) do(op Operation, key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if f, ok := g.active[op]; ok {
		if f.key != key {
			g.mu.Unlock()
			return nil, ErrInProgress
		}
		f.callers++
	} else {
		g.active[op] = &flight{key: key, callers: 1}
	}
	g.mu.Unlock()

	defer g.release(op)

	v, err, _ := g.group.Do(string(op)+"\x00"+key, fn)
	return v, err
}

func (g *inflight) release(op Operation) {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, ok := g.active[op]
	if !ok {
		return
	}
	f.callers--
	if f.callers <= 0 {
		delete(g.active, op)
	}
}

func (g *inflight) running(op Operation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.active[op]
	return ok
}
