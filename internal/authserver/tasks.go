package authserver

import (
	"context"

	"github.com/VadimTolstov/rococo-sub000/internal/logging"
)

// cleanupCodesTask sweeps expired authorization codes out of the store.
// Lazy expiry on Consume keeps correctness either way; this just frees
// memory for codes that were never redeemed.
func (s *Server) cleanupCodesTask(ctx context.Context, l logging.InternalLogger) error {
	removed, err := s.codes.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	l.Info("removed %d expired authorization codes", removed)
	return nil
}

// cleanupSessionsTask sweeps expired browser sessions and abandoned
// pending login requests.
func (s *Server) cleanupSessionsTask(_ context.Context, l logging.InternalLogger) error {
	sessions := s.sessions.DeleteExpired()
	pending := s.pending.DeleteExpired()
	l.Info("removed %d expired sessions and %d stale login requests", sessions, pending)
	return nil
}
