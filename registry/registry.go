// Package registry resolves code addresses across many code maps, one per
// block of generated code.
//
// A process that generates code keeps one Map per compiled block. Stack
// walkers and profilers only have a raw address; the registry finds the block
// whose range contains it and asks that block's Map for the origin.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/internal/options"
	"github.com/arloliu/pcmap/origin"
)

// DefaultCacheSize is the number of resolved addresses kept by default.
const DefaultCacheSize = 4096

// Hit is a resolved address.
type Hit struct {
	CodeBlock string
	Origin    origin.Origin
}

type block struct {
	name  string
	start uint64
	end   uint64
	m     *codemap.Map
}

// Registry indexes code maps by the address range they cover.
//
// A Registry is safe for concurrent use. Lookups only take a read lock.
type Registry struct {
	mu     sync.RWMutex
	blocks []block // sorted by start, non-overlapping
	names  map[string]struct{}

	cache   *lru.Cache[uint64, Hit]
	logger  log.Logger
	metrics *metrics
}

type config struct {
	logger     log.Logger
	registerer prometheus.Registerer
	cacheSize  int
}

// Option configures a Registry.
type Option = options.Option[*config]

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = l
	})
}

// WithRegisterer registers the registry metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return options.NoError(func(c *config) {
		c.registerer = r
	})
}

// WithCacheSize sets the number of cached lookups. Zero disables the cache.
func WithCacheSize(size int) Option {
	return options.New(func(c *config) error {
		if size < 0 {
			return fmt.Errorf("cache size must not be negative, got %d", size)
		}
		c.cacheSize = size

		return nil
	}).Named("cache size")
}

// New creates an empty Registry.
func New(opts ...Option) (*Registry, error) {
	cfg := &config{
		logger:    log.NewNopLogger(),
		cacheSize: DefaultCacheSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := &Registry{
		names:   make(map[string]struct{}),
		logger:  cfg.logger,
		metrics: newMetrics(cfg.registerer),
	}

	if cfg.cacheSize > 0 {
		cache, err := lru.New[uint64, Hit](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create lookup cache: %w", err)
		}
		r.cache = cache
	}

	return r, nil
}

// Register adds the map of a code block. Maps that cover no addresses are
// ignored.
//
// Returns errs.ErrInvalidCodeBlock for an empty name, errs.ErrNilMap,
// errs.ErrDuplicateCodeBlock if the name is taken and
// errs.ErrOverlappingCodeRange if the map overlaps a registered block.
func (r *Registry) Register(name string, m *codemap.Map) error {
	if name == "" {
		return errs.ErrInvalidCodeBlock
	}
	if m == nil {
		return errs.ErrNilMap
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateCodeBlock, name)
	}

	if m.IsEmpty() {
		_ = level.Debug(r.logger).Log("msg", "ignoring empty code map", "block", name)
		return nil
	}

	b := block{name: name, start: m.RangeStart(), end: m.RangeEnd(), m: m}
	i, _ := slices.BinarySearchFunc(r.blocks, b.start, func(e block, start uint64) int {
		return cmp.Compare(e.start, start)
	})
	if i > 0 && r.blocks[i-1].end >= b.start {
		return fmt.Errorf("%w: %q [%#x, %#x] overlaps %q", errs.ErrOverlappingCodeRange, name, b.start, b.end, r.blocks[i-1].name)
	}
	if i < len(r.blocks) && r.blocks[i].start <= b.end {
		return fmt.Errorf("%w: %q [%#x, %#x] overlaps %q", errs.ErrOverlappingCodeRange, name, b.start, b.end, r.blocks[i].name)
	}

	r.blocks = slices.Insert(r.blocks, i, b)
	r.names[name] = struct{}{}
	r.metrics.codeBlocks.Set(float64(len(r.blocks)))

	_ = level.Debug(r.logger).Log("msg", "registered code block", "block", name,
		"start", fmt.Sprintf("%#x", b.start), "end", fmt.Sprintf("%#x", b.end), "bytes", m.MemorySize())

	return nil
}

// Unregister removes a code block, typically when its code is freed.
// It reports whether the block was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[name]; !ok {
		return false
	}
	delete(r.names, name)

	i := slices.IndexFunc(r.blocks, func(b block) bool { return b.name == name })
	if i >= 0 {
		r.blocks = slices.Delete(r.blocks, i, i+1)
	}
	if r.cache != nil {
		r.cache.Purge()
	}
	r.metrics.codeBlocks.Set(float64(len(r.blocks)))

	_ = level.Debug(r.logger).Log("msg", "unregistered code block", "block", name)

	return true
}

// FindOrigin resolves addr against every registered block.
//
// If a block covers addr but has no origin for it, the returned Hit still
// names the block and the second result is false.
func (r *Registry) FindOrigin(addr uint64) (Hit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cache != nil {
		if hit, ok := r.cache.Get(addr); ok {
			r.metrics.cacheHits.Inc()
			r.metrics.lookups.WithLabelValues(resultFound).Inc()

			return hit, true
		}
	}

	// Blocks do not overlap, so ends are sorted as well.
	i, _ := slices.BinarySearchFunc(r.blocks, addr, func(b block, addr uint64) int {
		return cmp.Compare(b.end, addr)
	})
	if i == len(r.blocks) || addr < r.blocks[i].start {
		r.metrics.lookups.WithLabelValues(resultNotFound).Inc()
		return Hit{}, false
	}

	b := r.blocks[i]
	o, ok := b.m.FindOrigin(addr)
	if !ok {
		r.metrics.lookups.WithLabelValues(resultNoOrigin).Inc()
		return Hit{CodeBlock: b.name, Origin: o}, false
	}

	hit := Hit{CodeBlock: b.name, Origin: o}
	if r.cache != nil {
		// Purges take the write lock, so this entry cannot outlive its block.
		r.cache.Add(addr, hit)
	}
	r.metrics.lookups.WithLabelValues(resultFound).Inc()

	return hit, true
}

// Len returns the number of registered code blocks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.blocks)
}

// Blocks returns the registered block names in address order.
func (r *Registry) Blocks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.blocks))
	for i, b := range r.blocks {
		names[i] = b.name
	}

	return names
}
