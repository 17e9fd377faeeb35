package potato

import (
	"sync"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// Numerics is the per-entrance result of potato analysis, per spec.md §3/§4.5:
//
//	MeanTime         - expected dwell per potato state, keyed by global index;
//	                    Theta = sum(MeanTime) is the expected total sojourn time.
//	MeanExit         - distribution over successors at the moment the alarm fires.
//	MeanReward       - scalar, accumulated reward between entry and exit.
//	DistBeforeEvent  - distribution over potato states at the moment the alarm
//	                    fires, used to weight event-transition rewards.
type Numerics struct {
	MeanTime        map[int]float64
	Theta           float64
	MeanExit        map[int]float64
	MeanReward      float64
	DistBeforeEvent map[int]float64
}

// Potato is the per-event analysis unit of the reduction: it lazily
// computes state sets, then its local DTMC, then per-entrance Numerics as
// each is first requested, caching every result; SetKappa (κ changed) clears
// the numerics cache and Invalidate clears all of them. Caches are modeled as a value with explicit computed flags
// (Design Notes §9's first alternative) rather than an immutable
// rebuild-on-change Potato, because κ typically changes only twice per
// reduction (stage 1 then stage 2 of κ-derivation) and mutation in place
// avoids re-running ComputeStateSets/BuildLocalDTMC, which do not depend on
// κ at all.
type Potato struct {
	mu sync.RWMutex

	model   gsmp.ModelProvider
	rewards gsmp.RewardProvider
	event   gsmp.Event
	target  StateSet
	q       float64
	kappa   bigfloat.Decimal

	stateSetsComputed bool
	sets              StateSets

	dtmcComputed bool
	dtmc         *LocalDTMC

	numerics map[int]Numerics // entrance -> Numerics, populated on demand
}

// New constructs a Potato for event e over model, with the given
// reachability target set, uniformisation rate q, and numeric precision
// kappa. No computation happens until StateSets/DTMC/Numerics is called.
func New(model gsmp.ModelProvider, rewards gsmp.RewardProvider, e gsmp.Event, target StateSet, q float64, kappa bigfloat.Decimal) *Potato {
	return &Potato{
		model:    model,
		rewards:  rewards,
		event:    e,
		target:   target,
		q:        q,
		kappa:    kappa,
		numerics: make(map[int]Numerics),
	}
}

// Event returns the event this potato was built for.
func (p *Potato) Event() gsmp.Event {
	return p.event
}

// SetKappa updates the precision budget and invalidates every numerics
// cache entry (they depend on kappa through Fox–Glynn truncation); state
// sets and the local DTMC are kappa-independent and survive.
func (p *Potato) SetKappa(kappa bigfloat.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.kappa = kappa
	// Atomic reset: swap in a fresh map rather than deleting keys one at a
	// time, so a concurrent reader holding only a read lock either sees the
	// old, fully-populated cache or the new, fully-empty one — never a
	// partially-cleared map.
	p.numerics = make(map[int]Numerics)
}

// Invalidate wipes every cache (state sets, local DTMC, numerics), forcing
// full recomputation on next access. Used when the underlying model or
// target set changes, which SetKappa alone does not cover.
func (p *Potato) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stateSetsComputed = false
	p.sets = StateSets{}
	p.dtmcComputed = false
	p.dtmc = nil
	p.numerics = make(map[int]Numerics)
}

// Kappa returns the precision currently in effect.
func (p *Potato) Kappa() bigfloat.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.kappa
}
