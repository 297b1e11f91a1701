package swifi

import (
	"context"
	"log/slog"
)

// Session runs the requested direction(s) of a throughput test against
// exactly one server. A session does not retry: the first failed direction
// aborts it, and falling back to another server is the orchestrator's job.
type Session struct {
	engine    Engine
	server    *Server
	direction Direction
	logger    *slog.Logger
}

// NewSession creates a session for one server and direction.
func NewSession(engine Engine, server *Server, direction Direction, logger *slog.Logger) *Session {
	if logger == nil {
		logger = discardLogger()
	}
	return &Session{
		engine:    engine,
		server:    server,
		direction: direction,
		logger:    logger,
	}
}

// Run drives the engine for each requested direction, download first, and
// aggregates the converted measurements. The sink is handed to the engine
// unchanged.
func (s *Session) Run(ctx context.Context, sink ProgressSink) (*Result, error) {
	s.logger.Info("testing connection", "server", s.server.ID, "name", s.server.Name)

	result := &Result{Server: s.server}

	if s.direction.HasDownload() {
		s.logger.Info("performing download speed test")
		bps, err := s.engine.Download(ctx, s.server, sink)
		if err != nil {
			return nil, &MeasurementError{Direction: Download, Cause: err}
		}
		result.Download = &Measurement{Mbps: BitRate(bps).Mbps()}
	}

	if s.direction.HasUpload() {
		s.logger.Info("performing upload speed test")
		bps, err := s.engine.Upload(ctx, s.server, sink)
		if err != nil {
			return nil, &MeasurementError{Direction: Upload, Cause: err}
		}
		result.Upload = &Measurement{Mbps: BitRate(bps).Mbps()}
	}

	return result, nil
}
