// Package precision rounds float64 values at fixed decimal points so that
// accumulated prices and chip masses stay reproducible across runs.
//
// Rounding works on the exact binary value of the float and breaks exact
// ties to even, which is what %.2f and %.12g formatting produce. 1.005 is
// stored as 1.00499999999999989... and therefore rounds to 1.00.
package precision

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// MassDigits is the number of significant digits kept for accumulated chip mass.
const MassDigits = 12

// Cents rounds v to two decimal places.
func Cents(v float64) float64 {
	if !finite(v) {
		return v
	}
	return Exact(v).RoundBank(2).InexactFloat64()
}

// Significant rounds v to n significant digits. Zero and n <= 0 return v unchanged.
func Significant(v float64, n int) float64 {
	if v == 0 || n <= 0 || !finite(v) {
		return v
	}
	d := Exact(v)
	// magnitude of the leading digit is NumDigits()+Exponent()-1
	places := n - (d.NumDigits() + int(d.Exponent()))
	if places >= -int(d.Exponent()) {
		return v
	}
	return d.RoundBank(int32(places)).InexactFloat64()
}

// Exact returns the decimal equal to the binary value of v, digit for digit.
// decimal.NewFromFloat would start from the shortest representation instead.
// v must be finite.
func Exact(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v) // v = frac * 2^exp, 0.5 <= |frac| < 1
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow), int32(exp))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
