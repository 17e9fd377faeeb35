package reduction

import (
	"fmt"

	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/prism-gsmp/actmcreduce/potato"
)

// assemble implements spec.md §4.6 steps 1-3: start from the ACTMC's plain
// CTMC projection, collapse each potato's entrance rows into a scaled exit
// rate, raise q if any potato demands it, then uniformise the whole thing
// at the final q.
func assemble(actmc *gsmp.ACTMC, rewards *gsmp.RewardStructure, potatoes map[string]*potato.Potato, mode Mode) (*DTMC, RewardVector, map[string]PotatoMetadata, error) {
	n := actmc.NumStates()
	q := actmc.MaxExitRate()
	if q <= 0 {
		q = 1.0
	}

	// Step 1: plain CTMC projection (drop event transitions).
	rateRows := make([]map[int]float64, n)
	for s := 0; s < n; s++ {
		row, err := actmc.Transitions(s)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reduction.assemble: %w", err)
		}
		cp := make(map[int]float64, len(row))
		for j, r := range row {
			cp[j] = r
		}
		rateRows[s] = cp
	}

	stateReward := make([]float64, n)
	for s := 0; s < n; s++ {
		r, err := rewards.StateReward(s)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reduction.assemble: %w", err)
		}
		stateReward[s] = r
	}

	metadata := make(map[string]PotatoMetadata, len(potatoes))
	entranceTheta := make(map[int]float64)
	entranceMeanReward := make(map[int]float64)
	entranceMeanPayoffReward := make(map[int]float64) // overwrite, mode==ModeMeanPayoff; q-independent

	// Step 2: collapse each potato's entrance rows.
	for eventID, p := range potatoes {
		sets, err := p.StateSets()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reduction.assemble(%s): %w", eventID, err)
		}

		meta := PotatoMetadata{
			EventID:    eventID,
			Theta:      make(map[int]float64),
			MeanExit:   make(map[int]map[int]float64),
			MeanReward: make(map[int]float64),
		}

		for _, s := range sets.Entrances.Slice() {
			num, err := p.Numerics(s)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reduction.assemble(%s): %w", eventID, err)
			}

			theta := num.Theta
			if theta <= 0 {
				theta = DefaultTheta
			}
			rate := 1 / theta
			if rate > q {
				q = rate
			}

			scaled := make(map[int]float64, len(num.MeanExit))
			for succ, prob := range num.MeanExit {
				scaled[succ] = prob * rate
			}
			rateRows[s] = scaled

			meta.Entrances = append(meta.Entrances, s)
			meta.Theta[s] = theta
			meta.MeanExit[s] = num.MeanExit
			meta.MeanReward[s] = num.MeanReward

			entranceTheta[s] = theta
			entranceMeanReward[s] = num.MeanReward
			entranceMeanPayoffReward[s] = num.MeanReward / theta
		}

		metadata[eventID] = meta
	}

	// entranceReachReward must be computed against the *final* q (spec.md
	// §4.6: meanReward[s] / (theta(s)*q)) — q can still be raised by a later
	// potato's entrance above, so this is deferred to its own pass rather
	// than computed inline per entrance.
	entranceReachReward := make(map[int]float64, len(entranceTheta))
	for s, theta := range entranceTheta {
		entranceReachReward[s] = entranceMeanReward[s] / (theta * q)
	}

	// Step 3: uniformise at the final q.
	finalRows := make([]map[int]float64, n)
	for s := 0; s < n; s++ {
		total := 0.0
		pr := make(map[int]float64, len(rateRows[s])+1)
		for j, rate := range rateRows[s] {
			if rate <= 0 {
				continue
			}
			total += rate
			pr[j] += rate / q
		}
		pr[s] += 1 - total/q
		finalRows[s] = pr
	}

	rewardVector := make(RewardVector, n)
	for s := 0; s < n; s++ {
		if mode == ModeMeanPayoff {
			rewardVector[s] = stateReward[s]
		} else {
			rewardVector[s] = stateReward[s] / q
		}
	}
	if mode == ModeMeanPayoff {
		for s, r := range entranceMeanPayoffReward {
			rewardVector[s] = r
		}
	} else {
		for s, r := range entranceReachReward {
			rewardVector[s] += r
		}
	}

	return &DTMC{NumStates: n, Rows: finalRows, Q: q}, rewardVector, metadata, nil
}

// RelevantStates implements spec.md §4.7: a state is relevant if it has no
// alarm active, or is a potato entrance. Non-entrance interior potato states
// are collapsed by the reduction and are not relevant.
func RelevantStates(actmc *gsmp.ACTMC, potatoes map[string]*potato.Potato) ([]bool, error) {
	n := actmc.NumStates()
	relevant := make([]bool, n)
	for s := 0; s < n; s++ {
		if _, ok := actmc.ActiveEvent(s); !ok {
			relevant[s] = true
		}
	}
	for eventID, p := range potatoes {
		sets, err := p.StateSets()
		if err != nil {
			return nil, fmt.Errorf("reduction.RelevantStates(%s): %w", eventID, err)
		}
		for _, s := range sets.Entrances.Slice() {
			relevant[s] = true
		}
	}

	return relevant, nil
}
