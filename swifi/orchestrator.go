package swifi

import (
	"context"
	"log/slog"
)

// Catalog supplies the ordered candidate sequence for a test run. *Client is
// the production implementation.
type Catalog interface {
	SelectForTest(ctx context.Context, requestedID string) (Servers, error)
}

// runState tracks the fallback chain. Candidates are attempted in order,
// exactly once each; the first success wins.
type runState int

const (
	stateSelecting runState = iota
	stateAttempting
	stateSucceeded
	stateExhausted
)

// Orchestrator turns a Config into one Result, trying candidate servers in
// distance order until a session succeeds or every candidate has failed.
type Orchestrator struct {
	catalog Catalog
	engine  Engine
	logger  *slog.Logger
}

// NewOrchestrator wires a catalog and an engine into an orchestrator.
func NewOrchestrator(catalog Catalog, engine Engine, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Orchestrator{
		catalog: catalog,
		engine:  engine,
		logger:  logger,
	}
}

// Execute runs the fallback chain and returns the first successful result.
// Per-candidate failures are logged, not returned; only an exhausted chain
// or a selection failure surfaces as an error.
func (o *Orchestrator) Execute(ctx context.Context, cfg *Config, sink ProgressSink) (*Result, error) {
	var (
		state      = stateSelecting
		candidates Servers
		result     *Result
		index      int
	)

	for {
		switch state {
		case stateSelecting:
			servers, err := o.catalog.SelectForTest(ctx, cfg.ServerID)
			if err != nil {
				return nil, err
			}
			if len(servers) == 0 {
				o.logger.Error("no servers available for testing")
				return nil, ErrNoServersAvailable
			}
			candidates = servers
			state = stateAttempting

		case stateAttempting:
			server := candidates[index]
			session := NewSession(o.engine, server, cfg.Direction, o.logger)
			res, err := session.Run(ctx, sink)
			if err == nil {
				result = res
				state = stateSucceeded
				continue
			}
			o.logger.Error("server test failed", "server", server.ID, "error", err)
			if index < len(candidates)-1 {
				o.logger.Warn("trying next server...")
				index++
			} else {
				state = stateExhausted
			}

		case stateSucceeded:
			return result, nil

		case stateExhausted:
			o.logger.Error("all attempts failed")
			return nil, ErrAllAttemptsFailed
		}
	}
}
