// Package stats provides the numerical helpers behind the distribution
// chart kinds: standardization, empirical CDFs, normal plotting
// positions, and kernel density curves.
//
// Standardization and spread use the population standard deviation
// (dividing by n), matching the conventions of the charts this package
// feeds. Distribution math delegates to go-moremath.
package stats

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// zRange is the z-value span of the standard normal reference curve.
const zRange = 3.4

// Mean returns the arithmetic mean of xs. NaN for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// MeanStdDev returns the mean and population standard deviation of xs.
func MeanStdDev(xs []float64) (mu, sigma float64) {
	mu = Mean(xs)
	if len(xs) == 0 {
		return mu, math.NaN()
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return mu, math.Sqrt(ss / float64(len(xs)))
}

// Standardize returns (x - mu) / sigma for each value, using the
// population standard deviation. The input is not modified.
func Standardize(xs []float64) []float64 {
	mu, sigma := MeanStdDev(xs)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - mu) / sigma
	}
	return out
}

// EmpiricalCDF returns the data sorted ascending together with the
// cumulative fraction of the total at each point:
// y[i] = (x[0] + ... + x[i]) / sum(x). The input is not modified.
func EmpiricalCDF(xs []float64) (sorted, ys []float64) {
	sorted = append([]float64(nil), xs...)
	sort.Float64s(sorted)

	total := 0.0
	for _, x := range sorted {
		total += x
	}

	ys = make([]float64, len(sorted))
	run := 0.0
	for i, x := range sorted {
		run += x
		ys[i] = run / total
	}
	return sorted, ys
}

// PlottingPositions returns the n plotting positions (i - 0.5) / n for
// i in 1..n.
func PlottingPositions(n int) []float64 {
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = (float64(i+1) - 0.5) / float64(n)
	}
	return ps
}

// NormalQuantiles returns the standard normal quantile for each of the
// n plotting positions. These are the z percentiles of a probability
// plot's horizontal axis.
func NormalQuantiles(n int) []float64 {
	zs := make([]float64, n)
	for i, p := range PlottingPositions(n) {
		zs[i] = mstats.StdNormal.InvCDF(p)
	}
	return zs
}

// StandardNormalCurve samples the standard normal CDF at n evenly
// spaced z values across [-3.4, 3.4].
func StandardNormalCurve(n int) (zs, ps []float64) {
	zs = vec.Linspace(-zRange, zRange, n)
	ps = make([]float64, n)
	for i, z := range zs {
		ps[i] = mstats.StdNormal.CDF(z)
	}
	return zs, ps
}

// DensityCurve estimates the probability density of xs with a Gaussian
// KDE (Scott bandwidth) and samples it at n points. The sampling domain
// is the data range widened by three bandwidths on each side.
func DensityCurve(xs []float64, n int) (points, density []float64) {
	sample := mstats.Sample{Xs: xs}
	bw := mstats.BandwidthScott(sample)
	kde := mstats.KDE{Sample: sample, Bandwidth: bw}

	lo, hi := sample.Bounds()
	lo -= 3 * bw
	hi += 3 * bw

	points = vec.Linspace(lo, hi, n)
	density = make([]float64, n)
	for i, x := range points {
		density[i] = kde.PDF(x)
	}
	return points, density
}
