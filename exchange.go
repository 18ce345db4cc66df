// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction is one command and its reply, scoped to a single connection.
type Transaction struct {
	// ID correlates the log lines of one exchange.
	ID string

	// Command is the request as sent, without any digest prefix.
	Command Command

	// Response is the trimmed reply.
	Response string

	// Authenticated reports whether a digest was prepended.
	Authenticated bool

	// Started is when the connection attempt began.
	Started time.Time

	// Duration covers connect through teardown.
	Duration time.Duration
}

// exchange runs one full connect, greeting, send, receive and close cycle.
// Teardown runs on every path once the connection is open, and a teardown
// failure never replaces the exchange's own error.
func (p *Projector) exchange(ctx context.Context, cmd Command) (tx *Transaction, err error) {
	tx = &Transaction{
		ID:      uuid.New().String(),
		Command: cmd,
		Started: time.Now(),
	}

	logger := p.logger.With(
		Field{Key: "transaction", Value: tx.ID},
		Field{Key: "host", Value: p.endpoint.Address()},
		Field{Key: "command", Value: string(cmd.Code)},
	)

	defer func() {
		tx.Duration = time.Since(tx.Started)
		if err != nil {
			p.setLastError(err)
		}
	}()

	if err := newInputValidator().ValidateCommand(cmd); err != nil {
		logger.Error("Invalid command", Field{Key: "error", Value: err})
		return tx, err
	}

	s, err := open(ctx, p.endpoint, p.cfg, logger)
	if err != nil {
		return tx, err
	}

	defer func() {
		if closeErr := s.close(ctx); closeErr != nil {
			logger.Warn("Connection teardown failed", Field{Key: "error", Value: closeErr})
		}
	}()

	wire := s.auth.Authenticate(cmd)
	tx.Authenticated = len(wire) > len(cmd.String())

	logger.Debug("Sending command", Field{Key: "authenticated", Value: tx.Authenticated})
	if err := s.write(ctx, wire); err != nil {
		logger.Error("Failed to send command", Field{Key: "error", Value: err})
		return tx, classifyIOError("exchange", "failed to send command", err)
	}

	raw, err := s.readLine(ctx)
	if err != nil {
		logger.Error("Failed to read response", Field{Key: "error", Value: err})
		return tx, classifyIOError("exchange", "failed to read response", err)
	}

	tx.Response = trimResponse(raw)
	if tx.Response == authErrorReply {
		logger.Error("Authentication rejected by projector")
		return tx, authenticationError("exchange", "projector rejected the authentication digest", nil)
	}

	// A reply to another command is left for the decoders to map to Unknown.
	if err := newInputValidator().ValidateResponse(cmd, tx.Response); err != nil {
		logger.Warn("Response does not answer the command", Field{Key: "response", Value: tx.Response})
	}

	logger.Debug("Exchange complete", Field{Key: "response", Value: tx.Response})
	return tx, nil
}
