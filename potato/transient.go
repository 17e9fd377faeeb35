package potato

// vmMult computes v·P (row vector times matrix): out[j] = Σ_i v[i]·P[i][j].
// Used by the backward (time/exit) sweeps, which propagate a unit mass
// forward through the chain one DTMC step at a time.
func vmMult(v []float64, p *transitionMatrix) []float64 {
	n := p.Rows()
	out := make([]float64, n)
	for i, vi := range v {
		if vi == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			pij, _ := p.At(i, j)
			if pij == 0 {
				continue
			}
			out[j] += vi * pij
		}
	}

	return out
}

// mvMult computes P·v (matrix times column vector): out[i] = Σ_j P[i][j]·v[j].
// Used by the forward (reward) sweep.
func mvMult(p *transitionMatrix, v []float64) []float64 {
	n := p.Rows()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j, vj := range v {
			if vj == 0 {
				continue
			}
			pij, _ := p.At(i, j)
			sum += pij * vj
		}
		out[i] = sum
	}

	return out
}

// fgWeightAt returns w_i/total for index i against a Fox-Glynn window
// [lo,hi], with at giving the raw weight at i and total the window sum;
// indices outside the window contribute 0, per spec.md §4.5's "left-of-
// window convention" (handled by the caller via the running cumulative sum
// starting at 0, never by a special-cased branch here).
func fgWeightAt(i, lo, hi int, at func(int) float64, total float64) float64 {
	if i < lo || i > hi || total == 0 {
		return 0
	}

	return at(i) / total
}

// meanTimeVector implements spec.md §4.5 step 1: the expected dwell
// distribution over local states, starting from a unit mass at localEntrance.
func meanTimeVector(dtmc *LocalDTMC, localEntrance int, q float64, lo, hi int, at func(int) float64, total float64) []float64 {
	n := dtmc.P.Rows()
	v := make([]float64, n)
	v[localEntrance] = 1
	result := make([]float64, n)
	cum := 0.0

	for i := 0; i <= hi; i++ {
		if i > 0 {
			v = vmMult(v, dtmc.P)
		}
		cum += fgWeightAt(i, lo, hi, at, total)
		wPrime := (1 - cum) / q
		for k, vk := range v {
			result[k] += wPrime * vk
		}
	}

	return result
}

// exitDistributionVector implements spec.md §4.5 step 2: the distribution at
// firing time, over the same local index space as meanTimeVector.
func exitDistributionVector(dtmc *LocalDTMC, localEntrance int, lo, hi int, at func(int) float64, total float64) []float64 {
	n := dtmc.P.Rows()
	v := make([]float64, n)
	v[localEntrance] = 1
	result := make([]float64, n)

	for i := 0; i <= hi; i++ {
		if i > 0 {
			v = vmMult(v, dtmc.P)
		}
		coeff := fgWeightAt(i, lo, hi, at, total)
		if coeff == 0 {
			continue
		}
		for k, vk := range v {
			result[k] += coeff * vk
		}
	}

	return result
}

// rewardToGo implements spec.md §4.5 step 3's forward sweep: repeatedly
// applies P to the reward vector r and returns, at every iteration i, the
// component of P^i·r at localEntrance, time-profile-weighted and summed.
func rewardToGo(dtmc *LocalDTMC, localEntrance int, q float64, lo, hi int, at func(int) float64, total float64, r []float64) float64 {
	v := make([]float64, len(r))
	copy(v, r)
	var result, cum float64

	for i := 0; i <= hi; i++ {
		if i > 0 {
			v = mvMult(dtmc.P, v)
		}
		cum += fgWeightAt(i, lo, hi, at, total)
		wPrime := (1 - cum) / q
		result += wPrime * v[localEntrance]
	}

	return result
}
