package cups

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultSocket is where a local CUPS scheduler listens.
	DefaultSocket = "unix:///var/run/cups/cups.sock"

	contentTypeIPP = "application/ipp"
	defaultTimeout = 30 * time.Second
)

// AuthType selects how credentials are presented.
type AuthType string

const (
	AuthBasic  AuthType = "basic"
	AuthDigest AuthType = "digest"
)

// HTTPTransport is a Sender that posts requests to a CUPS server over HTTP,
// either on a TCP address or on a Unix socket.
type HTTPTransport struct {
	httpClient *http.Client
	endpoint   string
	socket     string
	username   string
	password   string
	authType   AuthType
	timeout    time.Duration
}

// TransportOption is a function that configures the transport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient sets a custom HTTP client. It replaces the Unix socket
// dialer as well.
func WithHTTPClient(httpClient *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.httpClient = httpClient
	}
}

// WithCredentials sets the user and password sent with every request.
func WithCredentials(username, password string) TransportOption {
	return func(t *HTTPTransport) {
		t.username = username
		t.password = password
	}
}

// WithAuthType sets the authentication scheme. Only basic is supported.
func WithAuthType(authType AuthType) TransportOption {
	return func(t *HTTPTransport) {
		t.authType = authType
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.timeout = timeout
	}
}

// NewHTTPTransport creates a transport for address, which is either a
// unix:// socket path, an http/https/ipp/ipps URL or a bare host:port.
func NewHTTPTransport(address string, opts ...TransportOption) (*HTTPTransport, error) {
	t := &HTTPTransport{
		authType: AuthBasic,
		timeout:  defaultTimeout,
	}

	if address == "" {
		address = DefaultSocket
	}
	if err := t.resolve(address); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.httpClient == nil {
		t.httpClient = &http.Client{Timeout: t.timeout}
		if t.socket != "" {
			socket := t.socket
			t.httpClient.Transport = &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socket)
				},
			}
		}
	}

	return t, nil
}

// resolve turns address into the POST endpoint.
func (t *HTTPTransport) resolve(address string) error {
	if path, ok := strings.CutPrefix(address, "unix://"); ok {
		if path == "" {
			return fmt.Errorf("empty unix socket path")
		}
		t.socket = path
		t.endpoint = "http://localhost/"
		return nil
	}

	// Bare host:port and ipp URIs default to the IPP port.
	defaultPort := ""
	if !strings.Contains(address, "://") {
		address = "http://" + address
		defaultPort = "631"
	}
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("parsing server address: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
	case "ipp":
		u.Scheme = "http"
		defaultPort = "631"
	case "ipps":
		u.Scheme = "https"
		defaultPort = "631"
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if defaultPort != "" && u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), defaultPort)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	t.endpoint = u.String()
	return nil
}

// Endpoint returns the URL requests are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send posts an encoded IPP request and returns the response body.
func (t *HTTPTransport) Send(ctx context.Context, request []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(request))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", contentTypeIPP)
	if t.username != "" || t.password != "" {
		switch t.authType {
		case AuthBasic:
			req.SetBasicAuth(t.username, t.password)
		case AuthDigest:
			return nil, ErrUnsupportedAuth
		default:
			return nil, fmt.Errorf("unknown auth type %q", t.authType)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
