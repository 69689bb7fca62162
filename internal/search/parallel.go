package search

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/hupe1980/collesort/internal/normalize"
	"github.com/hupe1980/collesort/model"
	"golang.org/x/sync/errgroup"
)

// prefixesPerWorker is the target number of subtrees per worker.
const prefixesPerWorker = 4

// prefix is a partial assignment that roots one worker subtree.
type prefix struct {
	sums   [MaxTeams]float64
	counts [MaxTeams]int
	groups []model.GroupID
	path   []int8
}

type workerResult struct {
	sol   model.Solution
	ok    bool
	stats Stats
}

// Parallel returns the first solution of the serial Cursor sequence using
// up to workers goroutines. It returns false if no solution exists within
// limit.
func Parallel(ctx context.Context, in *normalize.WorkingInput, k int, limit float64, workers int, cfg Config) (model.Solution, Stats, bool, error) {
	if workers < 1 {
		workers = 1
	}

	root := NewCursor(in, k, limit, cfg)
	if root.done {
		return model.Solution{}, Stats{}, false, nil
	}

	prefixes := root.split(workers * prefixesPerWorker)
	stats := root.stats
	if len(prefixes) == 0 {
		return model.Solution{}, stats, false, nil
	}

	floor := root.Floor()
	shared := NewBound(limit)
	results := make([]workerResult, len(prefixes))

	// perfect is the lowest prefix index that reached the floor. Subtrees
	// after it can only tie.
	var perfect atomic.Int64
	perfect.Store(math.MaxInt64)
	skip := func(i int) bool { return int64(i) > perfect.Load() }

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range prefixes {
		g.Go(func() error {
			if skip(i) {
				return nil
			}

			wcfg := cfg
			wcfg.Context = gctx
			c := NewCursor(in, k, limit, wcfg)
			c.seed(p)
			c.shared = shared
			c.abort = func() bool { return skip(i) }

			sol, ok := c.Next()
			results[i] = workerResult{sol: sol, ok: ok, stats: c.stats}
			if err := c.Err(); err != nil {
				return err
			}

			if ok && sol.Amplitude() <= floor {
				for {
					cur := perfect.Load()
					if int64(i) >= cur || perfect.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.Solution{}, stats, false, err
	}
	if err := ctx.Err(); err != nil {
		return model.Solution{}, stats, false, err
	}

	best := -1
	for i, r := range results {
		stats.add(r.stats)
		if !r.ok {
			continue
		}
		if best < 0 || r.sol.Less(results[best].sol) {
			best = i
		}
	}
	if best < 0 {
		return model.Solution{}, stats, false, nil
	}
	return results[best].sol, stats, true, nil
}

// seed sets the cursor root to p.
func (c *Cursor) seed(p prefix) {
	c.base = len(p.path)
	c.sums[c.base] = p.sums
	c.counts[c.base] = p.counts
	copy(c.groups, p.groups)
	copy(c.path, p.path)
}

// split returns the unpruned states at the shallowest depth that has at
// least target of them, in traversal order. It never goes deeper than
// n-1, so every prefix still has a value left to place.
func (c *Cursor) split(target int) []prefix {
	var out []prefix
	for depth := 1; depth < c.n; depth++ {
		out = c.collect(depth)
		if len(out) >= target {
			break
		}
	}
	if c.n == 1 {
		out = []prefix{{path: []int8{}, groups: []model.GroupID{}}}
	}
	return out
}

// collect enumerates the states at the given depth that survive the initial
// bound.
func (c *Cursor) collect(depth int) []prefix {
	var out []prefix

	d := 0
	c.expand(0)
	for d >= 0 {
		f := &c.frames[d]
		if f.next >= f.n {
			d--
			continue
		}

		choice := f.next
		f.next++
		g := f.cands[choice]

		nd := d + 1
		c.sums[nd] = c.sums[d]
		c.sums[nd][g] += c.in.Value(d)
		c.counts[nd] = c.counts[d]
		c.counts[nd][g]++
		c.groups[d] = model.GroupID(g)
		c.path[d] = choice
		c.stats.Nodes++

		if c.prune(nd, false, 0) {
			c.stats.Pruned++
			continue
		}

		if nd == depth {
			p := prefix{
				sums:   c.sums[nd],
				counts: c.counts[nd],
				groups: make([]model.GroupID, nd),
				path:   make([]int8, nd),
			}
			copy(p.groups, c.groups[:nd])
			copy(p.path, c.path[:nd])
			out = append(out, p)
			continue
		}

		c.expand(nd)
		d = nd
	}
	return out
}
