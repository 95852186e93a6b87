/*
Package random provides the named random-stream registry the cascade engine
and its collaborating processes borrow deterministic generators from (spec
section 5: "Random streams are registered by name... No stream is shared
mutably across threads"), plus the exponential/uniform sampling helpers
built on it.

Stream names are hashed into seeds with lukechampine.com/blake3, so two
registries built from the same master seed produce bit-identical streams
for the same stream name -- the determinism spec section 5 requires,
without a process-wide mutable RNG singleton.
*/
package random

import (
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/corsika-go/gocascade/units"

	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/blake3"
)

// Registry owns a set of named random streams, each seeded deterministically
// from a master seed and the stream's own name.
type Registry struct {
	masterSeed uint64

	mu      sync.Mutex
	streams map[string]*rand.Rand
}

// NewRegistry builds a Registry seeded from masterSeed. Every stream it ever
// hands out is a pure function of (masterSeed, stream name).
func NewRegistry(masterSeed uint64) *Registry {
	return &Registry{masterSeed: masterSeed, streams: make(map[string]*rand.Rand)}
}

// Stream returns the named stream, creating it on first use.
func (r *Registry) Stream(name string) *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.streams[name]; ok {
		return s
	}
	seed := streamSeed(r.masterSeed, name)
	s := rand.New(rand.NewSource(int64(seed)))
	r.streams[name] = s
	return s
}

// streamSeed derives a 64-bit seed from the master seed and a stream name by
// hashing the name with blake3 and folding the master seed in with XOR.
func streamSeed(masterSeed uint64, name string) uint64 {
	sum := blake3.Sum256([]byte(name))
	return masterSeed ^ binary.LittleEndian.Uint64(sum[:8])
}

// ExponentialSample draws a grammage from an exponential distribution with
// the given rate (inverse grammage). A non-positive rate never fires, per
// spec section 4.9, and is reported as infinite grammage rather than by
// constructing a distuv.Exponential, which panics on non-positive rate.
func ExponentialSample(rng *rand.Rand, rate units.InverseGrammage) units.Grammage {
	if rate <= 0 {
		return units.InfiniteGrammage
	}
	dist := distuv.Exponential{Rate: float64(rate), Src: rng}
	return units.Grammage(dist.Rand())
}

// ExponentialSampleTime is ExponentialSample's time-domain equivalent, used
// to sample a proper-time interval to the next decay.
func ExponentialSampleTime(rng *rand.Rand, rate units.InverseTime) units.Time {
	if rate <= 0 {
		return units.InfiniteTime
	}
	dist := distuv.Exponential{Rate: float64(rate), Src: rng}
	return units.Time(dist.Rand())
}

// UniformSample draws a uniform value in [0, max), used by
// process.Sequence.SelectInteraction/SelectDecay (spec section 4.7 step 8).
// max<=0 always returns 0, since there is nothing to select among.
func UniformSample(rng *rand.Rand, max float64) float64 {
	if max <= 0 {
		return 0
	}
	dist := distuv.Uniform{Min: 0, Max: max, Src: rng}
	return dist.Rand()
}

// IsInfinite reports whether a sampled grammage/time/etc. is the "never
// fires" sentinel, for callers that need to branch on it explicitly.
func IsInfinite(x float64) bool { return math.IsInf(x, 1) }
