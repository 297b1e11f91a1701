package swifi

// Measurement is one completed throughput measurement.
type Measurement struct {
	Mbps float64 `json:"mbps"`
}

// Result is the outcome of one successful test run. A nil measurement means
// that direction was not requested.
type Result struct {
	Server   *Server      `json:"server"`
	Download *Measurement `json:"download,omitempty"`
	Upload   *Measurement `json:"upload,omitempty"`
}
