package rpametrics

import (
	"fmt"
	"math"
)

type Percent float64

// Ratio returns num/den as a percentage, or 0 when den is 0.
func Ratio(num, den int) Percent {
	if den == 0 {
		return 0
	}
	return Percent(float64(num) / float64(den) * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Round returns p rounded to the given number of decimals.
func (p Percent) Round(places int) Percent {
	f := math.Pow(10, float64(places))
	return Percent(math.Round(float64(p)*f) / f)
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", p)
	if res == "+0.0%" {
		return "-"
	}
	return res
}
