// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// MockProjector provides a loopback PJLink device for testing.
type MockProjector struct {
	listener net.Listener
	wg       sync.WaitGroup
	stop     chan struct{}

	// Configuration
	Password  string
	Seed      string
	Greeting  string
	Responses map[string]string
	Silent    bool

	mu          sync.Mutex
	received    []string
	raw         []string
	connections int
}

// NewMockProjector creates a mock projector that answers without authentication.
func NewMockProjector() *MockProjector {
	return &MockProjector{
		Seed:      "498e4a67",
		Responses: map[string]string{},
		stop:      make(chan struct{}),
	}
}

// startMockProjector starts m and registers Stop with the test cleanup.
func startMockProjector(t *testing.T, m *MockProjector) *MockProjector {
	t.Helper()
	if err := m.Start(); err != nil {
		t.Fatalf("error listening: %s", err)
	}
	t.Cleanup(m.Stop)
	return m
}

// Start starts the mock projector on a random loopback port.
func (m *MockProjector) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	m.listener = listener

	m.wg.Add(1)
	go m.serve()
	return nil
}

// Stop stops the mock projector and waits for every connection handler.
func (m *MockProjector) Stop() {
	select {
	case <-m.stop:
		return
	default:
	}
	close(m.stop)
	if m.listener != nil {
		m.listener.Close()
	}
	m.wg.Wait()
}

// Host returns the listener host.
func (m *MockProjector) Host() string {
	host, _, _ := net.SplitHostPort(m.listener.Addr().String())
	return host
}

// Port returns the listener port.
func (m *MockProjector) Port() int {
	_, port, _ := net.SplitHostPort(m.listener.Addr().String())
	n, _ := strconv.Atoi(port)
	return n
}

// Received returns the commands received, with any digest stripped.
func (m *MockProjector) Received() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.received...)
}

// Raw returns the command lines exactly as received.
func (m *MockProjector) Raw() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.raw...)
}

// Connections returns the number of accepted connections.
func (m *MockProjector) Connections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connections
}

// SetResponse sets the reply to a command line such as "%1POWR ?".
func (m *MockProjector) SetResponse(command, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = response
}

func (m *MockProjector) serve() {
	defer m.wg.Done()

	for {
		conn, err := m.listener.Accept()
		if err != nil {
			select {
			case <-m.stop:
				return
			default:
				continue
			}
		}

		m.mu.Lock()
		m.connections++
		m.mu.Unlock()

		m.wg.Add(1)
		go m.handleConnection(conn)
	}
}

func (m *MockProjector) greeting() string {
	if m.Greeting != "" {
		return m.Greeting
	}
	if m.Password != "" {
		return greetingAuthPrefix + m.Seed
	}
	return greetingNoAuth
}

func (m *MockProjector) handleConnection(conn net.Conn) {
	defer m.wg.Done()
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return
	}

	if _, err := io.WriteString(conn, m.greeting()+"\r"); err != nil {
		return
	}

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\r')
	if err != nil {
		return
	}
	line = strings.TrimSuffix(line, "\r")

	command := line
	authorized := true
	if m.Password != "" {
		digest := Digest(m.Seed, m.Password)
		if strings.HasPrefix(line, digest) {
			command = line[len(digest):]
		} else {
			authorized = false
		}
	}

	m.mu.Lock()
	m.raw = append(m.raw, line)
	m.received = append(m.received, command)
	response, ok := m.Responses[command]
	m.mu.Unlock()

	if m.Silent {
		// Hold the connection until the client gives up.
		_, _ = io.Copy(io.Discard, reader)
		return
	}

	switch {
	case !authorized:
		response = authErrorReply
	case !ok:
		response = defaultResponse(command)
	}

	_, _ = io.WriteString(conn, response+"\r")

	// Wait for the client to close after its settle delay.
	_, _ = io.Copy(io.Discard, reader)
}

// defaultResponse acknowledges control commands and rejects unknown queries.
func defaultResponse(command string) string {
	if len(command) < 7 {
		return command + "=ERR1"
	}
	header := command[:6]
	if strings.HasSuffix(command, " ?") {
		return header + "=ERR1"
	}
	return header + "=OK"
}
