package reduction

import (
	"fmt"
	"math"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/prism-gsmp/actmcreduce/dtmcsolver"
	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/prism-gsmp/actmcreduce/potato"
)

// seedKappa is the coarse precision (10^-20) spec.md §4.8 stage 1 seeds
// every potato with before any adaptive κ has been derived.
var seedKappa = bigfloat.NewDecimal(1, -20)

const epsilon0 = 0.1

// DeriveKappa implements spec.md §4.8's two-stage adaptive precision
// derivation: probe a seed DTMC for minProb/maxRew, bound expected steps and
// reward, solve two more DTMCs via solver for empirical minTime/maxTime/
// maxSteps/maxTR, then combine per mode into a final κ clamped to
// [10^-settings.ConstantKappaDecimalDigits, 1].
//
// Open question resolved per DESIGN.md: compute_minProb_maxRew's "+kappa vs
// -kappa" ambiguity is resolved in favor of the source's choice (+kappa),
// i.e. the seed κ is added to the probed maxRew.
func DeriveKappa(actmc *gsmp.ACTMC, rewards *gsmp.RewardStructure, settings gsmp.Settings, target potato.StateSet, potatoes map[string]*potato.Potato, solver dtmcsolver.ReachRewardSolver, mode Mode) (bigfloat.Decimal, KappaTrace, error) {
	floor := math.Pow(10, -float64(settings.ConstantKappaDecimalDigits))

	if !settings.ComputeKappa {
		kappa, err := bigfloat.DecimalFromFloat64(floor)
		if err != nil {
			return bigfloat.Decimal{}, KappaTrace{}, fmt.Errorf("reduction.DeriveKappa: %w", err)
		}
		return kappa, KappaTrace{Kappa: floor}, nil
	}

	for _, p := range potatoes {
		p.SetKappa(seedKappa)
	}

	relevant, err := RelevantStates(actmc, potatoes)
	if err != nil {
		return bigfloat.Decimal{}, KappaTrace{}, fmt.Errorf("reduction.DeriveKappa: %w", err)
	}

	seedDTMC, _, _, err := assemble(actmc, rewards, potatoes, mode)
	if err != nil {
		return bigfloat.Decimal{}, KappaTrace{}, fmt.Errorf("reduction.DeriveKappa: %w", err)
	}

	minProb, maxRew := probeMinProbMaxRew(seedDTMC, rewards, relevant, target)
	if seedKappaF, ferr := seedKappa.Float64(); ferr == nil {
		maxRew += seedKappaF
	}

	n := 0
	for s, r := range relevant {
		if r && !target.Contains(s) {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	nf := float64(n)

	baseKappa1 := minProb / 2
	baseKappa2 := math.Min(baseKappa1, maxRew)

	maxExpectedSteps := nf / math.Pow(baseKappa1, nf)
	maxExpectedTR := maxExpectedSteps * maxRew

	b := 1 / (2 * maxExpectedSteps * nf)
	kappaSteps := math.Min(baseKappa1, math.Min(b, epsilon0/(2*maxExpectedSteps*(maxExpectedSteps*nf+1))))
	kappaTR := math.Min(baseKappa2, math.Min(b, epsilon0/(2*maxExpectedSteps*(maxExpectedTR*nf+1))))

	minTime, maxTime, maxSteps, maxTR, err := probeEmpiricalBounds(actmc, rewards, potatoes, target, relevant, solver, mode, kappaSteps, kappaTR)
	if err != nil {
		return bigfloat.Decimal{}, KappaTrace{}, fmt.Errorf("reduction.DeriveKappa: %w", err)
	}

	eps := settings.Epsilon
	var kappa float64
	switch mode {
	case ModeMeanPayoff:
		denom := math.Max(maxTR, maxTime) * (eps/nf + 2) * (nf*math.Max(maxTR, maxTime) + 1)
		candidate := (minTime * minTime * eps / nf) / denom
		kappa = math.Min(kappaSteps, math.Min(kappaTR, candidate)) * eps
	default:
		candidate1 := 1 / (2 * nf * maxSteps)
		candidate2 := eps / (2 * maxSteps * (maxTR*nf + 1))
		kappa = math.Min(kappaSteps, math.Min(kappaTR, math.Min(candidate1, candidate2))) * eps
	}

	if kappa < floor {
		kappa = floor
	}
	if kappa > 1 {
		kappa = 1
	}

	result, err := bigfloat.DecimalFromFloat64(kappa)
	if err != nil {
		return bigfloat.Decimal{}, KappaTrace{}, fmt.Errorf("reduction.DeriveKappa: %w", err)
	}

	trace := KappaTrace{
		BaseKappa1:       baseKappa1,
		BaseKappa2:       baseKappa2,
		MaxExpectedSteps: maxExpectedSteps,
		MaxExpectedTR:    maxExpectedTR,
		MinTime:          minTime,
		MaxTime:          maxTime,
		MaxSteps:         maxSteps,
		MaxTR:            maxTR,
		Kappa:            kappa,
	}

	return result, trace, nil
}

// probeMinProbMaxRew scans the seed DTMC's relevant non-target rows for the
// minimum positive transition probability, and the relevant states' reward
// vector for the maximum state reward.
func probeMinProbMaxRew(d *DTMC, rewards *gsmp.RewardStructure, relevant []bool, target potato.StateSet) (float64, float64) {
	minProb := math.Inf(1)
	maxRew := 0.0

	for s := 0; s < d.NumStates; s++ {
		if !relevant[s] || target.Contains(s) {
			continue
		}
		for _, p := range d.Rows[s] {
			if p > 0 && p < minProb {
				minProb = p
			}
		}
		r, err := rewards.StateReward(s)
		if err == nil && r > maxRew {
			maxRew = r
		}
	}

	if math.IsInf(minProb, 1) {
		minProb = 1
	}

	return minProb, maxRew
}

// probeEmpiricalBounds builds two more DTMCs at kappaSteps/kappaTR
// respectively and solves reach-reward from every relevant state, treated
// transiently as a target one at a time, to harvest tight empirical
// min/max time and reward bounds. Degenerate inputs (no relevant states, no
// rewards) fall back to the named DefaultTheta/DefaultMaxTR/DefaultMaxTime
// constants per spec.md §4.9's silent-fallback clause.
func probeEmpiricalBounds(actmc *gsmp.ACTMC, rewards *gsmp.RewardStructure, potatoes map[string]*potato.Potato, target potato.StateSet, relevant []bool, solver dtmcsolver.ReachRewardSolver, mode Mode, kappaSteps, kappaTR float64) (minTime, maxTime, maxSteps, maxTR float64, err error) {
	relevantStates := make([]int, 0)
	for s, r := range relevant {
		if r && !target.Contains(s) {
			relevantStates = append(relevantStates, s)
		}
	}
	if len(relevantStates) == 0 {
		return DefaultMaxTime, DefaultMaxTime, DefaultTheta, DefaultMaxTR, nil
	}

	kStepsDecimal, derr := bigfloat.DecimalFromFloat64(math.Max(kappaSteps, 1e-300))
	if derr != nil {
		return 0, 0, 0, 0, derr
	}
	for _, p := range potatoes {
		p.SetKappa(kStepsDecimal)
	}
	stepsDTMC, _, _, err := assemble(actmc, rewards, potatoes, mode)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	kTRDecimal, derr := bigfloat.DecimalFromFloat64(math.Max(kappaTR, 1e-300))
	if derr != nil {
		return 0, 0, 0, 0, derr
	}
	for _, p := range potatoes {
		p.SetKappa(kTRDecimal)
	}
	trDTMC, trRewards, _, err := assemble(actmc, rewards, potatoes, mode)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	ones := make([]float64, stepsDTMC.NumStates)
	for i := range ones {
		ones[i] = 1
	}

	minTime, maxTime = math.Inf(1), 0.0
	maxSteps = 0.0
	maxTR = 0.0

	for _, s := range relevantStates {
		tgt := make([]bool, stepsDTMC.NumStates)
		tgt[s] = true

		steps, serr := solver.ComputeReachRewards(asReachModel(stepsDTMC), ones, tgt)
		if serr != nil {
			continue
		}
		tr, terr := solver.ComputeReachRewards(asReachModel(trDTMC), trRewards, tgt)
		if terr != nil {
			continue
		}

		for _, v := range steps {
			if v > maxSteps {
				maxSteps = v
			}
			if v > 0 && v < minTime {
				minTime = v
			}
			if v > maxTime {
				maxTime = v
			}
		}
		for _, v := range tr {
			if v > maxTR {
				maxTR = v
			}
		}
	}

	if math.IsInf(minTime, 1) {
		minTime = DefaultTheta
	}
	if maxTime == 0 {
		maxTime = DefaultMaxTime
	}
	if maxSteps == 0 {
		maxSteps = DefaultTheta
	}
	if maxTR == 0 {
		maxTR = DefaultMaxTR
	}

	return minTime, maxTime, maxSteps, maxTR, nil
}
