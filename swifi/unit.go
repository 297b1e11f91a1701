package swifi

import "strconv"

// BitRate is a raw throughput figure in bits per second, as reported by the
// measurement engine.
type BitRate float64

const (
	bitsPerMegabit = 1_000_000.0
	bitsPerGigabit = 1_000_000_000.0
)

// Mbps converts the rate to megabits per second.
func (r BitRate) Mbps() float64 {
	return float64(r) / bitsPerMegabit
}

// Gbps converts the rate to gigabits per second.
func (r BitRate) Gbps() float64 {
	return float64(r) / bitsPerGigabit
}

func (r BitRate) String() string {
	return strconv.FormatFloat(r.Mbps(), 'f', 2, 64) + " Mbps"
}
