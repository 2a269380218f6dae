package imonline

import "fmt"

// Perbill is a fixed point fraction, parts per billion. All penalty
// arithmetic happens in integer space so results are reproducible across
// platforms.
type Perbill uint32

const PerbillOne = Perbill(1_000_000_000)

func PerbillFromParts(parts uint32) Perbill {
	if parts > uint32(PerbillOne) {
		return PerbillOne
	}
	return Perbill(parts)
}

func PerbillFromPercent(percent uint32) Perbill {
	parts := uint64(percent) * 10_000_000
	if parts > uint64(PerbillOne) {
		return PerbillOne
	}
	return Perbill(parts)
}

// PerbillFromRational saturates at one when the numerator exceeds the
// denominator. The denominator must be positive.
func PerbillFromRational(num uint64, den uint64) Perbill {
	if num >= den {
		return PerbillOne
	}
	return Perbill(num * uint64(PerbillOne) / den)
}

func (p Perbill) Parts() uint32 {
	return uint32(p)
}

// Mul multiplies two fractions, truncating toward zero.
func (p Perbill) Mul(o Perbill) Perbill {
	return Perbill(uint64(p) * uint64(o) / uint64(PerbillOne))
}

func (p Perbill) Float64() float64 {
	return float64(p) / float64(PerbillOne)
}

func (p Perbill) String() string {
	return fmt.Sprintf("%.7f", p.Float64())
}

// SlashFraction maps the number of unresponsive validators to the stake
// fraction slashed for each of them.
//
// The curve forgives anything below a tenth of the set plus one, then climbs
// linearly with slope 3/n and is scaled down to a 7% ceiling:
//
//	min(3 * (k - (n / 10 + 1)) / n, 1) * 0.07
//
// A single offender therefore always maps to zero, small minorities stay
// cheap and a coordinated-failure regime saturates at 7% per session.
// validatorSetCount must be positive, callers guarantee a non-empty set.
func SlashFraction(offenders uint32, validatorSetCount uint32) Perbill {
	threshold := validatorSetCount/10 + 1
	if offenders <= threshold {
		return Perbill(0)
	}
	deg := uint64(offenders - threshold)
	return PerbillFromRational(3*deg, uint64(validatorSetCount)).Mul(PerbillFromPercent(7))
}
