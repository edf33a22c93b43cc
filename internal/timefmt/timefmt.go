// Package timefmt turns a signed clock value into the sign/hours/minutes/
// seconds tuple shown on a timer display.
package timefmt

import (
	"fmt"
	"time"
)

// Parts is a formatted clock value.
type Parts struct {
	Sign    string `json:"sign" cbor:"1,keyasint"`
	Hours   int64  `json:"hours" cbor:"2,keyasint"`
	Minutes int64  `json:"minutes" cbor:"3,keyasint"`
	Seconds int64  `json:"seconds" cbor:"4,keyasint"`
}

// String renders the parts as [-]HH:MM:SS.
func (p Parts) String() string {
	return fmt.Sprintf("%s%02d:%02d:%02d", p.Sign, p.Hours, p.Minutes, p.Seconds)
}

// Formatter converts a clock value into display parts. decreasing is true
// while the timer counts down toward zero.
type Formatter func(d time.Duration, decreasing bool) Parts

var (
	units = [...]uint64{uint64(time.Hour), uint64(time.Minute), uint64(time.Second)}
	bases = [...]int64{0, 60, 60} // hours never carry
)

// Format is the default Formatter. Every time.Duration is valid input,
// including math.MinInt64.
//
// Seconds round up when the value is negative or decreasing, so a display
// counting down never shows a second that has not fully elapsed yet. A
// rounded-up 60 carries into minutes, and 60 minutes into hours.
func Format(d time.Duration, decreasing bool) Parts {
	var out [len(units)]int64

	rem := magnitude(d)
	last := len(units) - 1
	for i := 0; i < last; i++ {
		out[i] = int64(rem / units[i])
		rem -= uint64(out[i]) * units[i]
	}

	if d < 0 || decreasing {
		out[last] = int64(ceilDiv(rem, units[last]))
		for i := last; i > 0 && out[i] == bases[i]; i-- {
			out[i] = 0
			out[i-1]++
		}
	} else {
		out[last] = int64(rem / units[last])
	}

	p := Parts{Hours: out[0], Minutes: out[1], Seconds: out[2]}
	if d < 0 {
		p.Sign = "-"
	}
	return p
}

// magnitude is |d| as unsigned, so math.MinInt64 does not overflow.
func magnitude(d time.Duration) uint64 {
	if d < 0 {
		return uint64(-(d + 1)) + 1
	}
	return uint64(d)
}

func ceilDiv(n, unit uint64) uint64 {
	q := n / unit
	if n%unit != 0 {
		q++
	}
	return q
}
