package recommendations

import "sync"

// inflightGuard allows at most one outstanding request per scope.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// Acquire marks scope busy. The returned release func must be called once the request finishes.
func (g *inflightGuard) Acquire(scope string) (func(), bool) {
	if g == nil {
		return func() {}, true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[scope]; busy {
		return nil, false
	}
	g.active[scope] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, scope)
			g.mu.Unlock()
		})
	}, true
}
