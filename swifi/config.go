package swifi

// Config is the immutable per-invocation configuration, built once from the
// CLI flags and consumed by the orchestrator.
type Config struct {
	// ListOnly short-circuits the run: print the server table, no test.
	ListOnly bool
	// ServerID is the explicitly requested server id, empty for automatic
	// nearest-server selection.
	ServerID string
	// JSON switches the CLI to machine-readable output.
	JSON bool
	// Direction selects which measurements to perform.
	Direction Direction
}

// NewConfig builds a Config from raw flag values.
func NewConfig(list bool, serverID string, down, up, jsonOut bool) *Config {
	return &Config{
		ListOnly:  list,
		ServerID:  serverID,
		JSON:      jsonOut,
		Direction: ParseDirection(down, up),
	}
}
