package node

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/twmb/murmur3"
)

var ErrInvalidURL = errors.New("invalid node url")

// BasicAuth holds the credentials injected into the request URL.
type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Auth is the optional per-node authentication. Both methods may be set at once.
type Auth struct {
	JWT       string     `json:"jwt,omitempty"`
	BasicAuth *BasicAuth `json:"basicAuthNamePwd,omitempty"`
}

// URLCredentialError is returned when credentials cannot be attached to the node URL.
type URLCredentialError struct {
	Field string
	URL   string
}

func (e *URLCredentialError) Error() string {
	return fmt.Sprintf("failed to set %s on url %q", e.Field, e.URL)
}

// Node is a remote ledger endpoint. Two nodes are the same node if their URLs
// point to the same scheme, host and port, regardless of auth or path.
type Node struct {
	URL      url.URL
	Auth     *Auth
	Disabled bool
}

// Parse parses the node URL. Only absolute http(s) URLs are accepted.
func Parse(rawURL string) (Node, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Node{}, fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return Node{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return Node{}, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}

	return Node{URL: *u}, nil
}

// New is the same as Parse but also attaches the given auth.
func New(rawURL string, auth *Auth) (Node, error) {
	n, err := Parse(rawURL)
	if err != nil {
		return Node{}, err
	}

	n.Auth = auth

	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(rawURL string) Node {
	n, err := Parse(rawURL)
	if err != nil {
		panic(err)
	}

	return n
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

// Key returns the identity of the node in the form scheme://host:port.
// The port is always explicit, so http://a and http://a:80 share the key.
func (n Node) Key() string {
	scheme := strings.ToLower(n.URL.Scheme)
	host := strings.ToLower(n.URL.Hostname())

	port := n.URL.Port()
	if port == "" {
		port = defaultPort(scheme)
	}

	return scheme + "://" + net.JoinHostPort(host, port)
}

// Equal reports whether both nodes have the same identity.
func (n Node) Equal(other Node) bool {
	return n.Key() == other.Key()
}

// Hash64 returns a 64-bit hash of the node identity.
func (n Node) Hash64() uint64 {
	return murmur3.StringSum64(n.Key())
}

// Origin returns scheme://host[:port] of the node as it was configured.
func (n Node) Origin() string {
	return n.URL.Scheme + "://" + n.URL.Host
}

// String returns the node URL with the password redacted.
func (n Node) String() string {
	return n.URL.Redacted()
}

// WithRequest returns a copy of the node whose URL points at the given path
// and query. Basic auth credentials, if configured, are set as URL userinfo.
func (n Node) WithRequest(path, query string) (Node, error) {
	u := n.URL

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u.Path = path
	u.RawPath = ""
	u.RawQuery = query
	u.Fragment = ""

	if n.Auth != nil && n.Auth.BasicAuth != nil {
		// Credentials can only be carried by hierarchical URLs with a host.
		if u.Opaque != "" || u.Host == "" {
			return Node{}, &URLCredentialError{Field: "username", URL: n.String()}
		}

		creds := n.Auth.BasicAuth
		u.User = url.UserPassword(creds.Username, creds.Password)
	}

	n.URL = u

	return n, nil
}

// BearerToken returns the JWT configured for the node, if any.
func (n Node) BearerToken() string {
	if n.Auth == nil {
		return ""
	}

	return n.Auth.JWT
}
