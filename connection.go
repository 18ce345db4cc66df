// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"
)

// receiveBufferSize bounds a single greeting or response read.
const receiveBufferSize = 8192

// Dialer opens the TCP connection for one transaction.
// *net.Dialer satisfies this interface.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// session is one open connection with the authentication state read from its greeting.
type session struct {
	conn   net.Conn
	reader *bufio.Reader
	auth   AuthContext
	cfg    *config
	logger Logger
}

// open dials the endpoint, reads the greeting and builds the session's AuthContext.
// On any failure after the dial the connection is released before returning.
func open(ctx context.Context, endpoint Endpoint, cfg *config, logger Logger) (*session, error) {
	dialCtx := ctx
	if cfg.connectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.connectTimeout)
		defer cancel()
	}

	address := endpoint.Address()
	logger.Debug("Connecting to projector", Field{Key: "timeout", Value: cfg.connectTimeout})

	conn, err := cfg.dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		if ctx.Err() != nil {
			return nil, timeoutError("open", "connect cancelled", ctx.Err())
		}
		logger.Error("Projector unreachable", Field{Key: "error", Value: err})
		return nil, unreachableError("open", err)
	}

	s := &session{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, receiveBufferSize),
		auth:   AuthContext{Password: cfg.password},
		cfg:    cfg,
		logger: logger,
	}

	raw, err := s.readLine(ctx)
	if err != nil {
		s.release()
		return nil, classifyIOError("open", "failed to read greeting", err)
	}

	greeting := trimGreeting(raw)
	if err := s.auth.ApplyGreeting(greeting); err != nil {
		logger.Error("Greeting rejected", Field{Key: "greeting", Value: greeting}, Field{Key: "error", Value: err})
		s.release()
		return nil, err
	}

	logger.Debug("Greeting received", Field{Key: "requires_auth", Value: s.auth.RequiresAuth})
	return s, nil
}

// write sends the wire form of a command under the configured write deadline.
func (s *session) write(ctx context.Context, wire string) error {
	done := make(chan error, 1)

	if s.cfg.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.writeTimeout)); err != nil {
			return err
		}
	}

	go func() {
		_, err := io.WriteString(s.conn, wire)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = s.conn.SetWriteDeadline(time.Now())
		<-done
		return ctx.Err()
	}
}

// readLine reads up to and including the next carriage return under the
// configured read deadline. Data followed by EOF is returned without error.
func (s *session) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)

	if s.cfg.readTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.readTimeout)); err != nil {
			return "", err
		}
	}

	go func() {
		line, err := s.reader.ReadSlice('\r')
		if errors.Is(err, io.EOF) && len(line) > 0 {
			err = nil
		}
		done <- result{line: string(line), err: err}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-ctx.Done():
		_ = s.conn.SetReadDeadline(time.Now())
		<-done
		return "", ctx.Err()
	}
}

// close waits the settle delay and then releases the socket. It always
// releases, even when ctx is already done.
func (s *session) close(ctx context.Context) error {
	if s.cfg.settleDelay > 0 {
		timer := time.NewTimer(s.cfg.settleDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	return s.release()
}

func (s *session) release() error {
	return s.conn.Close()
}

// classifyIOError maps a transport error to a PJLinkError code.
func classifyIOError(op, message string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return timeoutError(op, message, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutError(op, message, err)
	}

	if errors.Is(err, bufio.ErrBufferFull) {
		return protocolError(op, message+": no terminator within receive buffer", err)
	}

	return networkError(op, message, err)
}
