package potato

import (
	"fmt"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/prism-gsmp/actmcreduce/foxglynn"
	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// renormalizationTolerance is the multiplier on kappa spec.md §4.5 allows
// an exit distribution's total mass to miss 1 by, before ComputeNumerics
// gives up and reports ErrRenormalizationFailed.
const renormalizationTolerance = 10.0

// renormalizationFloor bounds 10*kappa from below for the purposes of this
// check only. The transient sweeps in transient.go accumulate in plain
// float64, so for a kappa tighter than double precision can express over a
// multi-hundred-step Fox-Glynn window (e.g. the 10^-20 seed kappa
// reduction.DeriveKappa's stage 1 probes with), 10*kappa is an unmeetable
// bound no implementation built on float64 arithmetic could satisfy; below
// this floor the check would reject every such probe, not just genuinely
// bad ones.
const renormalizationFloor = 1e-9

// window bundles a Fox-Glynn weight table (or a synthesized two-sided one,
// for Uniform) behind the shape meanTimeVector/exitDistributionVector/
// rewardToGo need: a [lo,hi] index range, a per-index raw weight lookup, and
// the total those raw weights are divided by (in fgWeightAt).
type window struct {
	lo, hi int
	at     func(int) float64
	total  float64
}

func fromFoxGlynn(r foxglynn.Result) window {
	return window{
		lo: r.L,
		hi: r.R,
		at: func(i int) float64 {
			f, _ := r.At(i).Float64()
			return f
		},
		total: mustFloat64(r.Total),
	}
}

func mustFloat64(x bigfloat.Extended) float64 {
	f, _ := x.Float64()
	return f
}

// StateSets lazily computes (or returns the cached) state-set classification
// for the potato's event against its target.
func (p *Potato) StateSets() (StateSets, error) {
	p.mu.RLock()
	if p.stateSetsComputed {
		defer p.mu.RUnlock()
		return p.sets, nil
	}
	p.mu.RUnlock()

	sets, err := ComputeStateSets(p.model, p.event, p.target)
	if err != nil {
		return StateSets{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets = sets
	p.stateSetsComputed = true

	return p.sets, nil
}

// DTMC lazily computes (or returns the cached) local uniformised DTMC.
func (p *Potato) DTMC() (*LocalDTMC, error) {
	p.mu.RLock()
	if p.dtmcComputed {
		defer p.mu.RUnlock()
		return p.dtmc, nil
	}
	p.mu.RUnlock()

	sets, err := p.StateSets()
	if err != nil {
		return nil, err
	}

	dtmc, err := BuildLocalDTMC(p.model, sets, p.q)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.dtmc = dtmc
	p.dtmcComputed = true

	return p.dtmc, nil
}

// Numerics lazily computes (or returns the cached) per-entrance mean
// computations for the potato's event, entered at global state `entrance`.
func (p *Potato) Numerics(entrance int) (Numerics, error) {
	p.mu.RLock()
	if n, ok := p.numerics[entrance]; ok {
		defer p.mu.RUnlock()
		return n, nil
	}
	kappa := p.kappa
	p.mu.RUnlock()

	sets, err := p.StateSets()
	if err != nil {
		return Numerics{}, err
	}
	if !sets.Entrances.Contains(entrance) {
		return Numerics{}, fmt.Errorf("potato.Numerics(%s, %d): %w", p.event.ID, entrance, ErrUnknownEntrance)
	}

	dtmc, err := p.DTMC()
	if err != nil {
		return Numerics{}, err
	}

	n, err := ComputeNumerics(p.model, p.rewards, dtmc, p.event, entrance, p.q, kappa)
	if err != nil {
		return Numerics{}, err
	}

	p.mu.Lock()
	p.numerics[entrance] = n
	p.mu.Unlock()

	return n, nil
}

// ComputeNumerics implements spec.md §4.5: dispatched by e.Dist.Kind, builds
// the Fox-Glynn weight window for the event's firing-time distribution at
// uniformisation rate q, then runs the three transient iterations
// (meanTimeVector, exitDistributionVector, rewardToGo) over dtmc, entered at
// the global state `entrance`.
func ComputeNumerics(model gsmp.ModelProvider, rewards gsmp.RewardProvider, dtmc *LocalDTMC, e gsmp.Event, entrance int, q float64, kappa bigfloat.Decimal) (Numerics, error) {
	localEntrance, ok := dtmc.ToLocal[entrance]
	if !ok {
		return Numerics{}, fmt.Errorf("potato.ComputeNumerics(%s, %d): %w", e.ID, entrance, ErrUnknownEntrance)
	}

	w, err := weightWindow(e, q, kappa)
	if err != nil {
		return Numerics{}, fmt.Errorf("potato.ComputeNumerics(%s): %w", e.ID, err)
	}

	meanTimeLocal := meanTimeVector(dtmc, localEntrance, q, w.lo, w.hi, w.at, w.total)
	exitLocal := exitDistributionVector(dtmc, localEntrance, w.lo, w.hi, w.at, w.total)

	meanTime := make(map[int]float64, dtmc.numStates)
	theta := 0.0
	for i := 0; i < dtmc.numStates; i++ {
		g := dtmc.ToGlobal[i]
		meanTime[g] = meanTimeLocal[i]
		theta += meanTimeLocal[i]
	}

	distBeforeEvent := make(map[int]float64, dtmc.numStates)
	meanExit := make(map[int]float64)
	for i := 0; i < dtmc.numStates; i++ {
		distBeforeEvent[dtmc.ToGlobal[i]] = exitLocal[i]
	}
	for i := dtmc.numStates; i < len(dtmc.ToGlobal); i++ {
		meanExit[dtmc.ToGlobal[i]] += exitLocal[i]
	}

	// Residual mass still inside `states` at firing time is moved out
	// through the event's own successor distribution, per spec.md §4.5 step 2.
	for g, residual := range distBeforeEvent {
		if residual <= 0 {
			continue
		}
		succDist, ok := e.SuccDist[g]
		if !ok {
			continue
		}
		for succ, prob := range succDist {
			meanExit[succ] += residual * prob
		}
	}

	total := 0.0
	for _, m := range meanExit {
		total += m
	}
	tol := renormalizationTolerance * decimalFloat(kappa)
	if tol < renormalizationFloor {
		tol = renormalizationFloor
	}
	if total == 0 {
		return Numerics{}, fmt.Errorf("potato.ComputeNumerics(%s): exit mass is zero: %w", e.ID, ErrRenormalizationFailed)
	}
	if absFloat(total-1) > tol {
		return Numerics{}, fmt.Errorf("potato.ComputeNumerics(%s): exit mass %g missed 1 by more than 10*kappa=%g: %w", e.ID, total, tol, ErrRenormalizationFailed)
	}
	for g := range meanExit {
		meanExit[g] /= total
	}

	meanReward, err := computeMeanReward(model, rewards, dtmc, e, localEntrance, q, w, distBeforeEvent)
	if err != nil {
		return Numerics{}, fmt.Errorf("potato.ComputeNumerics(%s): %w", e.ID, err)
	}

	return Numerics{
		MeanTime:        meanTime,
		Theta:           theta,
		MeanExit:        meanExit,
		MeanReward:      meanReward,
		DistBeforeEvent: distBeforeEvent,
	}, nil
}

func computeMeanReward(model gsmp.ModelProvider, rewards gsmp.RewardProvider, dtmc *LocalDTMC, e gsmp.Event, localEntrance int, q float64, w window, distBeforeEvent map[int]float64) (float64, error) {
	n := dtmc.P.Rows()
	r := make([]float64, n)
	for i := 0; i < dtmc.numStates; i++ {
		g := dtmc.ToGlobal[i]
		rw, err := rewards.StateReward(g)
		if err != nil {
			return 0, err
		}
		r[i] = rw
	}

	reward := rewardToGo(dtmc, localEntrance, q, w.lo, w.hi, w.at, w.total, r)

	if rewards.HasTransitionRewards() {
		for g, mass := range distBeforeEvent {
			if mass <= 0 {
				continue
			}
			succDist, ok := e.SuccDist[g]
			if !ok {
				continue
			}
			tr, err := rewards.EventTransitionRewards(g, e.ID)
			if err != nil {
				return 0, err
			}
			for succ, prob := range succDist {
				reward += mass * prob * tr[succ]
			}
		}
	}

	return reward, nil
}

// weightWindow builds the Fox-Glynn weight table for event e's firing-time
// distribution, uniformised at rate q, per spec.md §4.5's dispatch table.
func weightWindow(e gsmp.Event, q float64, kappa bigfloat.Decimal) (window, error) {
	switch e.Dist.Kind {
	case gsmp.DistDirac:
		r, err := foxglynn.Weights(q*e.Dist.Param1, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
		if err != nil {
			return window{}, err
		}
		return fromFoxGlynn(r), nil

	case gsmp.DistErlang:
		return erlangWindow(e.Dist.Shape, e.Dist.Param1, q, kappa)

	case gsmp.DistUniform:
		return uniformWindow(e.Dist.Param1, e.Dist.Param2, q, kappa)

	case gsmp.DistExponential:
		return window{}, gsmp.ErrInvalidPotatoDistribution

	default:
		return window{}, gsmp.ErrUnsupportedDistribution
	}
}

// erlangWindow implements the "ACTMCPotatoErlang" path: an Erlang(k, lambda)
// firing time is a sum of k exponential stages, so its uniformised weight
// table is the k-fold convolution of single-exponential Fox-Glynn tables at
// the combined rate q·lambda/(q+lambda), accumulated as k shifted vectors.
func erlangWindow(k int, lambda, q float64, kappa bigfloat.Decimal) (window, error) {
	if k < 1 {
		return window{}, fmt.Errorf("potato: erlang shape k=%d must be >= 1", k)
	}
	combined := q * lambda / (q + lambda)
	r, err := foxglynn.Weights(combined, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	if err != nil {
		return window{}, err
	}
	base := make([]float64, r.R-r.L+1)
	for i := r.L; i <= r.R; i++ {
		f, _ := r.At(i).Float64()
		base[i-r.L] = f / mustFloat64(r.Total)
	}

	acc := base
	for stage := 1; stage < k; stage++ {
		acc = convolve(acc, base)
	}

	return normalizedWindow(r.L*k, acc), nil
}

// uniformWindow implements the two-sided cumulative-Poisson formulation for
// a Uniform(a,b) firing time: the per-step weight is proportional to the
// Poisson CDF at rate q·a minus the Poisson CDF at rate q·b, i.e. the average
// Poisson mass swept out as the rate ranges uniformly over [qa, qb].
func uniformWindow(a, b, q float64, kappa bigfloat.Decimal) (window, error) {
	rA, err := foxglynn.Weights(q*a, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	if err != nil {
		return window{}, err
	}
	rB, err := foxglynn.Weights(q*b, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	if err != nil {
		return window{}, err
	}

	lo := minInt(rA.L, rB.L)
	hi := maxInt(rA.R, rB.R)

	cdfA := cumulative(rA, lo, hi)
	cdfB := cumulative(rB, lo, hi)

	diff := make([]float64, hi-lo+1)
	for i := range diff {
		d := cdfA[i] - cdfB[i]
		if d < 0 {
			d = 0
		}
		diff[i] = d
	}

	return normalizedWindow(lo, diff), nil
}

func cumulative(r foxglynn.Result, lo, hi int) []float64 {
	out := make([]float64, hi-lo+1)
	total := mustFloat64(r.Total)
	cum := 0.0
	for i := lo; i <= hi; i++ {
		if i >= r.L && i <= r.R && total != 0 {
			f, _ := r.At(i).Float64()
			cum += f / total
		}
		out[i-lo] = cum
	}

	return out
}

// convolve computes the discrete convolution of two finite weight vectors
// (both already normalized to sum to 1), shifted so the result's index 0
// corresponds to the sum of both inputs' starting offsets.
func convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			out[i+j] += ai * bj
		}
	}

	return out
}

// normalizedWindow wraps a dense weight slice (indices lo..lo+len(w)-1) as a
// window, renormalizing so the weights sum to exactly 1 (truncation and
// convolution both leave residual error on the order of kappa).
func normalizedWindow(lo int, w []float64) window {
	total := 0.0
	for _, x := range w {
		total += x
	}
	if total == 0 {
		total = 1
	}
	cp := make([]float64, len(w))
	copy(cp, w)

	return window{
		lo: lo,
		hi: lo + len(w) - 1,
		at: func(i int) float64 {
			idx := i - lo
			if idx < 0 || idx >= len(cp) {
				return 0
			}
			return cp[idx]
		},
		total: total,
	}
}

func decimalFloat(d bigfloat.Decimal) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
