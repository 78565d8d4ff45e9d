package sim

import "math/rand"

// Trace is a replayable access sequence. Entries are page numbers within
// the single watched file the simulator models.
type Trace []uint64

// Workload pairs a name with a seeded trace generator. Generators are
// pure: the same configuration and seed always produce the same trace.
type Workload struct {
	Name string
	Gen  func(cfg Config, seed int64) Trace
}

// Workloads returns the standard generator set.
func Workloads() []Workload {
	return []Workload{
		{Name: "sequential_scan", Gen: SequentialScan},
		{Name: "looping_working_set", Gen: LoopingWorkingSet},
		{Name: "zipf", Gen: Zipf},
		{Name: "uniform_random", Gen: UniformRandom},
		{Name: "scan_mix", Gen: ScanMix},
	}
}

// SequentialScan walks the universe in order, wrapping around until the
// trace is full. No page repeats before every other page has been seen,
// the worst case for any recency scheme.
func SequentialScan(cfg Config, _ int64) Trace {
	var (
		trace    = make(Trace, cfg.Length)
		universe = uint64(max(cfg.Universe, 1))
	)
	for i := range trace {
		trace[i] = uint64(i) % universe
	}
	return trace
}

// LoopingWorkingSet keeps HotRatio of accesses inside a cache-sized
// working set at the bottom of the universe and scatters the rest over
// the pages above it.
func LoopingWorkingSet(cfg Config, seed int64) Trace {
	var (
		trace    = make(Trace, cfg.Length)
		rng      = rand.New(rand.NewSource(seed))
		hotSize  = int64(max(cfg.Capacity, 1))
		coldSize = int64(max(cfg.Universe-int(hotSize), 1))
	)
	for i := range trace {
		if rng.Float64() < cfg.HotRatio {
			trace[i] = uint64(rng.Int63n(hotSize))
		} else {
			trace[i] = uint64(hotSize + rng.Int63n(coldSize))
		}
	}
	return trace
}

// Zipf draws pages from a Zipf distribution over the universe, so a
// small set of pages receives most of the traffic with a long tail
// behind it.
func Zipf(cfg Config, seed int64) Trace {
	skew := cfg.ZipfSkew
	if skew <= 1 {
		skew = DefaultConfig().ZipfSkew
	}
	var (
		trace = make(Trace, cfg.Length)
		rng   = rand.New(rand.NewSource(seed))
		imax  = uint64(max(cfg.Universe, 2) - 1)
		zipf  = rand.NewZipf(rng, skew, 1.0, imax)
	)
	for i := range trace {
		trace[i] = zipf.Uint64()
	}
	return trace
}

// UniformRandom draws pages uniformly from the universe.
func UniformRandom(cfg Config, seed int64) Trace {
	var (
		trace = make(Trace, cfg.Length)
		rng   = rand.New(rand.NewSource(seed))
		n     = int64(max(cfg.Universe, 1))
	)
	for i := range trace {
		trace[i] = uint64(rng.Int63n(n))
	}
	return trace
}

// ScanMix replays a looping working set with one full sweep of the
// universe spliced into the middle, each page exactly once. This is the
// shape a file search over a hot corpus produces and the case the
// two-segment scheme exists for.
func ScanMix(cfg Config, seed int64) Trace {
	var (
		loop     = LoopingWorkingSet(cfg, seed)
		universe = max(cfg.Universe, 1)
		half     = len(loop) / 2
		trace    = make(Trace, 0, len(loop)+universe)
	)
	trace = append(trace, loop[:half]...)
	for page := 0; page < universe; page++ {
		trace = append(trace, uint64(page))
	}
	trace = append(trace, loop[half:]...)
	return trace
}
