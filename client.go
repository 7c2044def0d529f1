package cups

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/user"

	"github.com/enthus-golang/cups/ipp"
)

// Sender delivers one encoded IPP request and returns the raw response. It
// is the only point where an operation blocks.
type Sender interface {
	Send(ctx context.Context, request []byte) ([]byte, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, request []byte) ([]byte, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, request []byte) ([]byte, error) {
	return f(ctx, request)
}

// Manager runs printer and job operations as IPP request/response exchanges
// over a Sender. It is safe for concurrent use; the request-id counter is
// its only mutable state.
type Manager struct {
	sender   Sender
	charset  string
	language string
	username string
	version  ipp.Version
	ids      requestCounter
	logger   *slog.Logger
}

// Option is a function that configures the manager.
type Option func(*Manager)

// WithCharset sets attributes-charset.
func WithCharset(charset string) Option {
	return func(m *Manager) {
		m.charset = charset
	}
}

// WithLanguage sets attributes-natural-language.
func WithLanguage(language string) Option {
	return func(m *Manager) {
		m.language = language
	}
}

// WithUsername sets requesting-user-name on every request.
func WithUsername(username string) Option {
	return func(m *Manager) {
		m.username = username
	}
}

// WithOperationID seeds the request-id counter; the next request uses id+1.
func WithOperationID(id uint32) Option {
	return func(m *Manager) {
		m.ids.set(id)
	}
}

// WithVersion sets the protocol version of outgoing requests.
func WithVersion(v ipp.Version) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a Manager that sends its requests through sender.
func New(sender Sender, opts ...Option) *Manager {
	m := &Manager{
		sender:   sender,
		charset:  ipp.DefaultCharset,
		language: ipp.DefaultLanguage,
		version:  ipp.Version11,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return m
}

// Charset returns the attributes-charset sent with every request.
func (m *Manager) Charset() string { return m.charset }

// Language returns the attributes-natural-language sent with every request.
func (m *Manager) Language() string { return m.language }

// Username returns the requesting-user-name, if any.
func (m *Manager) Username() string { return m.username }

// OperationID returns the last issued request id (OperationCurrent) or issues
// a new one (OperationNew).
func (m *Manager) OperationID(mode OperationIDMode) (uint32, error) {
	if mode == OperationNew {
		return m.ids.next()
	}
	return m.ids.current(), nil
}

// requestingUser is the requesting-user-name for job submission: the
// configured username, or the local account when none is set.
func (m *Manager) requestingUser() string {
	if m.username != "" {
		return m.username
	}
	return systemUsername()
}

// systemUsername returns $USER, then the account of the current process, then
// "anonymous".
func systemUsername() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}

// NextRequestID issues a new request id.
func (m *Manager) NextRequestID() (uint32, error) {
	return m.ids.next()
}

// CurrentRequestID returns the last issued request id, 0 if none.
func (m *Manager) CurrentRequestID() uint32 {
	return m.ids.current()
}

// do runs one exchange: build, send, parse and status check. The caller maps
// the returned message.
func (m *Manager) do(ctx context.Context, req ipp.Request) (*ipp.Message, error) {
	x := m.newExchange(req.Op)

	id, err := m.ids.next()
	if err != nil {
		return nil, x.fail(ctx, err)
	}

	req.RequestID = id
	req.Version = m.version
	req.Charset = m.charset
	req.Language = m.language
	if req.User == "" {
		req.User = m.username
	}

	body, err := ipp.Build(req)
	if err != nil {
		return nil, x.fail(ctx, err)
	}
	if err := x.advance(ctx, eventBuilt); err != nil {
		return nil, err
	}

	raw, err := m.sender.Send(ctx, body)
	if err != nil {
		var terr *TransportError
		if !errors.As(err, &terr) {
			err = &TransportError{Op: req.Op, Err: err}
		}
		return nil, x.fail(ctx, err)
	}
	if err := x.advance(ctx, eventReceived); err != nil {
		return nil, err
	}

	resp, err := ipp.Parse(raw, ipp.WithSkipHook(func(err error) {
		m.logger.Debug("skipping attribute", "op", req.Op.String(), "error", err)
	}))
	if err != nil {
		return nil, x.fail(ctx, err)
	}
	if err := x.advance(ctx, eventParsed); err != nil {
		return nil, err
	}

	if resp.RequestID != id {
		return nil, x.fail(ctx, ErrRequestIDMismatch)
	}
	if status := resp.Status(); !status.Successful() {
		perr := &ProtocolError{Op: req.Op, Code: status, Message: resp.StatusMessage()}
		m.logger.Warn("ipp request failed",
			"op", req.Op.String(),
			"request_id", id,
			"status", status.String(),
			"class", status.Class().String(),
			"message", perr.Message,
		)
		return nil, x.fail(ctx, perr)
	}
	if err := x.advance(ctx, eventAccepted); err != nil {
		return nil, err
	}

	return resp, nil
}
