package renderer

import (
	"bytes"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// count formats n with thousands separators, e.g. "12,345".
func count(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, s[i])
	}
	return sign + string(b)
}

// hours formats an amount of hours with one decimal and thousands separators.
func hours(d decimal.Decimal) string {
	r := d.Round(1)
	whole := r.Truncate(0)
	s := count(int(whole.IntPart())) + r.Sub(whole).Abs().StringFixed(1)[1:]
	if r.IsNegative() && whole.IsZero() {
		s = "-" + s
	}
	return s
}
