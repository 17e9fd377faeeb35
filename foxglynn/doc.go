// Package foxglynn computes truncated Poisson weights via the Fox & Glynn
// (1988) method: given a Poisson rate lambda and a required truncation
// accuracy kappa, it returns the left/right truncation points L, R, an
// unnormalised weight vector W[L..R] proportional to Poisson(lambda; i)
// (scaled so the weight at the mode is 1), and its total T = sum(W).
// W[i]/T gives the normalised weights; each side's search stops once a
// geometric bound on the tail beyond it is at most kappa/2 of the running
// total, or once a weight falls to the underflow guard.
//
// All intermediate arithmetic runs in bigfloat.Extended so the computation
// survives the thousands of orders of magnitude a large lambda or a tight
// kappa can produce — a plain float64 Poisson(lambda; i) underflows or
// overflows long before the truncation window is found.
package foxglynn
