package search

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hupe1980/collesort/internal/normalize"
	"github.com/hupe1980/collesort/model"
	"golang.org/x/time/rate"
)

// MaxTeams is the largest supported group count.
const MaxTeams = 5

// checkInterval is the number of expanded nodes between context checks.
const checkInterval = 4096

// relTolerance scales the bound tolerance with the input magnitude.
const relTolerance = 1e-9

// Stats reports search effort.
type Stats struct {
	// Nodes is the number of expanded search nodes.
	Nodes int64
	// Leaves is the number of complete assignments evaluated.
	Leaves int64
	// Pruned is the number of subtrees cut by the bound.
	Pruned int64
	// Improvements is the number of times a pass found a better incumbent.
	Improvements int64
	// Passes is the number of Next calls that ran a search pass.
	Passes int64
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Leaves += o.Leaves
	s.Pruned += o.Pruned
	s.Improvements += o.Improvements
	s.Passes += o.Passes
}

// Config holds optional cursor settings.
type Config struct {
	// Context is checked every few thousand nodes. Nil means never canceled.
	Context context.Context

	// Logger receives throttled progress records at debug level. Nil
	// disables progress logging.
	Logger *slog.Logger

	// ProgressInterval is the minimum time between progress records.
	// Default: 1s.
	ProgressInterval time.Duration
}

// frame holds the ordered candidate groups for one depth.
type frame struct {
	cands [MaxTeams]int8
	n     int8
	next  int8
}

// Cursor is a resumable branch-and-bound enumeration of solutions.
//
// Cursor is NOT thread-safe.
type Cursor struct {
	in       *normalize.WorkingInput
	k        int
	n        int
	capacity int
	limit    float64
	tol      float64
	mean     float64
	parity   float64 // 1 if integral and Total is not divisible by k

	ctx      context.Context
	log      *slog.Logger
	progress *rate.Sometimes

	// base is the depth of the root state; > 0 for parallel workers.
	base int

	frames []frame
	sums   [][MaxTeams]float64 // sums[d]: group sums after placing d values
	counts [][MaxTeams]int
	groups []model.GroupID // working position -> group on the current path
	path   []int8          // candidate index chosen at each depth

	bestGroups []model.GroupID
	bestPath   []int8

	hasLast  bool
	lastAmp  float64
	lastPath []int8

	// shared and abort are set by Parallel.
	shared *Bound
	abort  func() bool

	stats Stats
	err   error
	done  bool
}

// NewCursor creates a cursor over in with k groups. limit is the initial
// bound: only solutions with amplitude <= limit are produced. Pass +Inf to
// enumerate every partition.
//
// If k does not evenly divide in.Len() or lies outside [1, MaxTeams], the
// cursor produces no solutions.
func NewCursor(in *normalize.WorkingInput, k int, limit float64, cfg Config) *Cursor {
	n := in.Len()
	c := &Cursor{
		in:         in,
		k:          k,
		n:          n,
		limit:      limit,
		tol:        relTolerance * (in.Scale() + 1),
		ctx:        cfg.Context,
		log:        cfg.Logger,
		frames:     make([]frame, n),
		sums:       make([][MaxTeams]float64, n+1),
		counts:     make([][MaxTeams]int, n+1),
		groups:     make([]model.GroupID, n),
		path:       make([]int8, n),
		bestGroups: make([]model.GroupID, n),
		bestPath:   make([]int8, n),
		lastPath:   make([]int8, n),
	}

	if k < 1 || k > MaxTeams || n == 0 || n%k != 0 {
		c.done = true
		return c
	}

	c.capacity = n / k
	c.mean = in.Total() / float64(k)
	if in.Integral() && math.Mod(in.Total(), float64(k)) != 0 {
		c.parity = 1
	}

	if c.log != nil {
		interval := cfg.ProgressInterval
		if interval <= 0 {
			interval = time.Second
		}
		c.progress = &rate.Sometimes{Interval: interval}
	}
	return c
}

// Next runs the search until the next solution in (amplitude, traversal)
// order is found. It returns false when the sequence is exhausted or the
// context was canceled; use Err to tell the two apart.
func (c *Cursor) Next() (model.Solution, bool) {
	if c.done || c.err != nil {
		return model.Solution{}, false
	}

	c.stats.Passes++
	amp, found := c.pass()
	if c.err != nil || !found {
		c.done = true
		return model.Solution{}, false
	}

	c.hasLast = true
	c.lastAmp = amp
	copy(c.lastPath, c.bestPath)

	return c.solution(amp), true
}

// Err returns the context error that stopped the cursor, if any.
func (c *Cursor) Err() error { return c.err }

// Stats returns the accumulated search statistics.
func (c *Cursor) Stats() Stats { return c.stats }

// Reset restarts the enumeration from the beginning.
func (c *Cursor) Reset() {
	if c.capacity == 0 {
		return
	}
	c.hasLast = false
	c.done = false
	c.err = nil
	c.stats = Stats{}
}

// Floor returns a lower bound on the amplitude of every solution below the
// cursor's root.
func (c *Cursor) Floor() float64 {
	if c.capacity == 0 {
		return 0
	}
	return math.Max(0, c.lowerBound(c.base))
}

// pass runs one depth-first sweep and returns the smallest key greater than
// the last returned one.
func (c *Cursor) pass() (float64, bool) {
	var (
		found   bool
		bestAmp float64
		floor   = c.Floor()
	)

	depth := c.base
	c.expand(depth)

	for depth >= c.base {
		f := &c.frames[depth]
		if f.next >= f.n {
			depth--
			continue
		}

		choice := f.next
		f.next++
		g := f.cands[choice]

		nd := depth + 1
		c.sums[nd] = c.sums[depth]
		c.sums[nd][g] += c.in.Value(depth)
		c.counts[nd] = c.counts[depth]
		c.counts[nd][g]++
		c.groups[depth] = model.GroupID(g)
		c.path[depth] = choice

		c.stats.Nodes++
		if c.stats.Nodes%checkInterval == 0 && c.interrupted(found, bestAmp) {
			return 0, false
		}

		if nd == c.n {
			c.stats.Leaves++
			amp := model.Amplitude(c.sums[nd][:c.k])
			if !c.accept(amp, found, bestAmp) {
				continue
			}
			found, bestAmp = true, amp
			copy(c.bestGroups, c.groups)
			copy(c.bestPath, c.path)
			c.stats.Improvements++
			if c.shared != nil {
				c.shared.Tighten(amp)
			}
			if amp <= floor {
				// Nothing below the floor exists and later ties lose.
				return bestAmp, true
			}
			continue
		}

		if c.prune(nd, found, bestAmp) {
			c.stats.Pruned++
			continue
		}

		c.expand(nd)
		depth = nd
	}

	return bestAmp, found
}

// accept reports whether a leaf with the given amplitude at the current path
// becomes the new incumbent.
func (c *Cursor) accept(amp float64, found bool, bestAmp float64) bool {
	if found {
		if amp >= bestAmp {
			return false
		}
	} else if amp > c.limit {
		return false
	}

	if c.shared != nil && amp > c.shared.Load() {
		return false
	}

	if c.hasLast {
		if amp < c.lastAmp {
			return false
		}
		if amp == c.lastAmp && comparePath(c.path, c.lastPath) <= 0 {
			return false
		}
	}
	return true
}

// prune reports whether the subtree at depth d cannot contain a new
// incumbent.
func (c *Cursor) prune(d int, found bool, bestAmp float64) bool {
	lb := c.lowerBound(d)
	if found && lb >= bestAmp {
		return true
	}
	if lb > c.limit {
		return true
	}
	return c.shared != nil && lb > c.shared.Load()
}

// lowerBound returns an admissible bound on the amplitude of any completion
// of the state at depth d, already adjusted for rounding.
func (c *Cursor) lowerBound(d int) float64 {
	maxLo, minHi := math.Inf(-1), math.Inf(1)
	sums, counts := &c.sums[d], &c.counts[d]

	for g := 0; g < c.k; g++ {
		r := c.capacity - counts[g]
		lo := sums[g] + c.in.RangeSum(c.n-r, c.n)
		hi := sums[g] + c.in.RangeSum(d, d+r)
		if lo > maxLo {
			maxLo = lo
		}
		if hi < minHi {
			minHi = hi
		}
	}

	lb := max(0, maxLo-minHi, maxLo-c.mean, c.mean-minHi) - c.tol
	if c.in.Integral() {
		return max(math.Ceil(lb), c.parity)
	}
	return lb
}

// expand fills the frame at depth d with the candidate groups in traversal
// order.
func (c *Cursor) expand(d int) {
	f := &c.frames[d]
	f.n, f.next = 0, 0
	sums, counts := &c.sums[d], &c.counts[d]

	empty := false
	for g := 0; g < c.k; g++ {
		if counts[g] >= c.capacity {
			continue
		}
		if counts[g] == 0 {
			if empty {
				continue
			}
			empty = true
		}

		j := f.n
		for j > 0 && sums[f.cands[j-1]] > sums[g] {
			f.cands[j] = f.cands[j-1]
			j--
		}
		f.cands[j] = int8(g)
		f.n++
	}
}

// interrupted checks for cancellation and emits progress.
func (c *Cursor) interrupted(found bool, bestAmp float64) bool {
	if c.progress != nil {
		c.progress.Do(func() {
			incumbent := c.limit
			if found {
				incumbent = bestAmp
			}
			c.log.Debug("search progress",
				"nodes", c.stats.Nodes,
				"leaves", c.stats.Leaves,
				"pruned", c.stats.Pruned,
				"bound", incumbent,
			)
		})
	}

	if c.ctx != nil {
		if err := c.ctx.Err(); err != nil {
			c.err = err
			return true
		}
	}

	if c.abort != nil && c.abort() {
		c.done = true
		return true
	}
	return false
}

// solution maps the best path back to input positions.
func (c *Cursor) solution(amp float64) model.Solution {
	groups := make([]model.GroupID, c.n)
	for i, g := range c.bestGroups {
		groups[c.in.Origin(i)] = g
	}
	return model.NewSolution(model.NewAssignment(groups, c.k), amp)
}

func comparePath(a, b []int8) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
