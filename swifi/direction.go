package swifi

// Direction specifies which part of the speed test to perform.
type Direction int

const (
	// Download tests download speed only.
	Download Direction = iota
	// Upload tests upload speed only.
	Upload
	// Both tests download and upload speeds (the default).
	Both
)

// ParseDirection resolves the --down/--up flag pair into a Direction.
// Asking for neither is the same as asking for both.
func ParseDirection(down, up bool) Direction {
	switch {
	case down && !up:
		return Download
	case up && !down:
		return Upload
	default:
		return Both
	}
}

// HasDownload reports whether a download measurement is requested.
func (d Direction) HasDownload() bool {
	return d == Download || d == Both
}

// HasUpload reports whether an upload measurement is requested.
func (d Direction) HasUpload() bool {
	return d == Upload || d == Both
}

func (d Direction) String() string {
	switch d {
	case Download:
		return "download"
	case Upload:
		return "upload"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}
