// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"
)

// Default timing, matching what slow projector firmware tolerates.
const (
	DefaultConnectTimeout = 1000 * time.Millisecond
	DefaultReadTimeout    = 5 * time.Second
	DefaultWriteTimeout   = 5 * time.Second
	DefaultSettleDelay    = 1500 * time.Millisecond
)

// Endpoint is the network address of one projector.
type Endpoint struct {
	Host string
	Port int
}

// Address returns the host:port dial address.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

type config struct {
	password       string
	connectTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	settleDelay    time.Duration
	logger         Logger
	dialer         Dialer
}

func defaultConfig() *config {
	return &config{
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		settleDelay:    DefaultSettleDelay,
		logger:         &NoOpLogger{},
		dialer:         &net.Dialer{},
	}
}

// Option represents a functional option for configuring a Projector.
type Option func(*Projector)

// WithPort overrides the PJLink port (default 4352).
func WithPort(port int) Option {
	return func(p *Projector) {
		p.endpoint.Port = port
	}
}

// WithPassword sets the password used when a projector requests authentication.
// Whether authentication happens is decided by the projector's greeting.
func WithPassword(password string) Option {
	return func(p *Projector) {
		p.cfg.password = password
	}
}

// WithConnectTimeout bounds the TCP connect.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(p *Projector) {
		p.cfg.connectTimeout = timeout
	}
}

// WithReadTimeout bounds each greeting or response read. Zero waits forever.
func WithReadTimeout(timeout time.Duration) Option {
	return func(p *Projector) {
		p.cfg.readTimeout = timeout
	}
}

// WithWriteTimeout bounds each command write. Zero waits forever.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(p *Projector) {
		p.cfg.writeTimeout = timeout
	}
}

// WithTimeout sets both read and write timeouts to the same value.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Projector) {
		p.cfg.readTimeout = timeout
		p.cfg.writeTimeout = timeout
	}
}

// WithSettleDelay sets how long a connection is held open after the reply
// before it is closed. Some projectors drop commands when the socket closes early.
func WithSettleDelay(delay time.Duration) Option {
	return func(p *Projector) {
		p.cfg.settleDelay = delay
	}
}

// WithLogger sets the logger. Use NoOpLogger to disable logging.
func WithLogger(logger Logger) Option {
	return func(p *Projector) {
		if logger != nil {
			p.cfg.logger = logger
		}
	}
}

// WithDialer replaces the dialer used to open connections.
func WithDialer(dialer Dialer) Option {
	return func(p *Projector) {
		if dialer != nil {
			p.cfg.dialer = dialer
		}
	}
}

// Projector controls one PJLink device. Every method opens its own
// connection, performs one command and closes the connection before returning.
//
// A Projector is safe for concurrent use, but concurrent calls open
// independent connections and the device decides how they interleave.
// Callers that need ordering must serialize calls themselves.
type Projector struct {
	endpoint Endpoint
	cfg      *config
	logger   Logger

	mu        sync.Mutex
	lastPower PowerStatus
	lastMute  MuteStatus
	lastErr   string
}

// NewProjector creates a Projector for the device at host. No connection is made.
//
//	p := pjlink.NewProjector("192.168.1.50",
//		pjlink.WithPassword("JBMIAProjectorLink"),
//		pjlink.WithSettleDelay(500*time.Millisecond),
//	)
//	status, err := p.PowerStatus(ctx)
func NewProjector(host string, options ...Option) *Projector {
	p := &Projector{
		endpoint: Endpoint{Host: host, Port: DefaultPort},
		cfg:      defaultConfig(),
	}
	for _, option := range options {
		option(p)
	}
	p.logger = p.cfg.logger
	return p
}

// Endpoint returns the projector's address.
func (p *Projector) Endpoint() Endpoint {
	return p.endpoint
}

// LastError returns the message of the most recent failed call, or "" if none failed.
func (p *Projector) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Projector) setLastError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err.Error()
}

// Exchange sends an arbitrary class 1 command and returns the transaction.
func (p *Projector) Exchange(ctx context.Context, cmd Command) (*Transaction, error) {
	return p.exchange(ctx, cmd)
}

func (p *Projector) control(ctx context.Context, cmd Command) (Ack, error) {
	tx, err := p.exchange(ctx, cmd)
	if err != nil {
		return AckUnknown, err
	}
	return DecodeAck(cmd.Code, tx.Response), nil
}

func (p *Projector) queryValue(ctx context.Context, code CommandCode) (string, error) {
	tx, err := p.exchange(ctx, Query(code))
	if err != nil {
		return "", err
	}
	return ExtractValue(tx.Response), nil
}

// PowerOn switches the projector on.
func (p *Projector) PowerOn(ctx context.Context) (Ack, error) {
	return p.control(ctx, PowerCommand(true))
}

// PowerOff switches the projector to standby.
func (p *Projector) PowerOff(ctx context.Context) (Ack, error) {
	return p.control(ctx, PowerCommand(false))
}

// PowerStatus queries the power state. An unrecognized reply returns the
// previously decoded state instead of PowerUnknown.
func (p *Projector) PowerStatus(ctx context.Context) (PowerStatus, error) {
	tx, err := p.exchange(ctx, Query(CmdPower))

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		return p.lastPower, err
	}

	if status := DecodePowerStatus(tx.Response); status != PowerUnknown {
		p.lastPower = status
	} else {
		p.logger.Warn("Unrecognized power status, keeping previous value",
			Field{Key: "response", Value: tx.Response},
			Field{Key: "previous", Value: p.lastPower.String()})
	}
	return p.lastPower, nil
}

// Input returns the two digit code of the selected input, e.g. "31".
func (p *Projector) Input(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdInput)
}

// SetInput selects the input with the given class and index.
func (p *Projector) SetInput(ctx context.Context, inputType InputType, index int) (Ack, error) {
	return p.SelectInput(ctx, Input{Type: inputType, Index: index})
}

// SelectInput selects the given input, such as one of the InputPreset values.
func (p *Projector) SelectInput(ctx context.Context, in Input) (Ack, error) {
	cmd, err := InputCommand(in)
	if err != nil {
		p.setLastError(err)
		return AckUnknown, err
	}
	return p.control(ctx, cmd)
}

// InputRGB selects RGB input n.
func (p *Projector) InputRGB(ctx context.Context, n int) (Ack, error) {
	return p.SetInput(ctx, InputRGB, n)
}

// InputVideo selects Video input n.
func (p *Projector) InputVideo(ctx context.Context, n int) (Ack, error) {
	return p.SetInput(ctx, InputVideo, n)
}

// InputDigital selects Digital input n.
func (p *Projector) InputDigital(ctx context.Context, n int) (Ack, error) {
	return p.SetInput(ctx, InputDigital, n)
}

// InputStorage selects Storage input n.
func (p *Projector) InputStorage(ctx context.Context, n int) (Ack, error) {
	return p.SetInput(ctx, InputStorage, n)
}

// InputNetwork selects Network input n.
func (p *Projector) InputNetwork(ctx context.Context, n int) (Ack, error) {
	return p.SetInput(ctx, InputNetwork, n)
}

// InputList returns the raw INST value listing the available input codes.
// Use ParseInputList to decode it.
func (p *Projector) InputList(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdInputList)
}

func (p *Projector) mute(ctx context.Context, setting MuteStatus) (Ack, error) {
	cmd, err := MuteCommand(setting)
	if err != nil {
		p.setLastError(err)
		return AckUnknown, err
	}
	return p.control(ctx, cmd)
}

// AVShutterClose closes the shutter, muting audio and video.
func (p *Projector) AVShutterClose(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteShutterClosed)
}

// AVShutterOpen opens the shutter, restoring audio and video.
func (p *Projector) AVShutterOpen(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteShutterOpen)
}

// AVMuteOn mutes audio and video. It is the same command as AVShutterClose.
func (p *Projector) AVMuteOn(ctx context.Context) (Ack, error) {
	return p.AVShutterClose(ctx)
}

// AVMuteOff restores audio and video. It is the same command as AVShutterOpen.
func (p *Projector) AVMuteOff(ctx context.Context) (Ack, error) {
	return p.AVShutterOpen(ctx)
}

// AudioMuteOn mutes audio.
func (p *Projector) AudioMuteOn(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteAudioOn)
}

// AudioMuteOff unmutes audio.
func (p *Projector) AudioMuteOff(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteAudioOff)
}

// VideoMuteOn blanks the picture.
func (p *Projector) VideoMuteOn(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteVideoOn)
}

// VideoMuteOff restores the picture.
func (p *Projector) VideoMuteOff(ctx context.Context) (Ack, error) {
	return p.mute(ctx, MuteVideoOff)
}

// MuteStatus queries the AV mute state. An unrecognized reply returns the
// previously decoded state instead of MuteUnknown.
func (p *Projector) MuteStatus(ctx context.Context) (MuteStatus, error) {
	tx, err := p.exchange(ctx, Query(CmdAVMute))

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		return p.lastMute, err
	}

	if status := DecodeMuteStatus(tx.Response); status != MuteUnknown {
		p.lastMute = status
	} else {
		p.logger.Warn("Unrecognized mute status, keeping previous value",
			Field{Key: "response", Value: tx.Response},
			Field{Key: "previous", Value: p.lastMute.String()})
	}
	return p.lastMute, nil
}

// ErrorStatus returns the six digit ERST value. Use ParseErrorReport to decode it.
func (p *Projector) ErrorStatus(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdErrorStatus)
}

// LampInfo returns the LAMP value: cumulative hours followed by 0 (off) or 1 (on)
// for each lamp. Use ParseLampReport to decode it.
func (p *Projector) LampInfo(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdLamp)
}

// Name returns the projector name configured on the device.
func (p *Projector) Name(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdName)
}

// Manufacturer returns the INF1 value, usually the manufacturer name.
func (p *Projector) Manufacturer(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdManufacturer)
}

// Model returns the INF2 value, usually the model name.
func (p *Projector) Model(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdModel)
}

// OtherInfo returns the free-form INFO value.
func (p *Projector) OtherInfo(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdOtherInfo)
}

// Class returns the PJLink class the device supports, e.g. "1".
func (p *Projector) Class(ctx context.Context) (string, error) {
	return p.queryValue(ctx, CmdClass)
}
