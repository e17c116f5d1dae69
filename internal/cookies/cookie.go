package cookies

import (
	"errors"
	"time"
)

// ErrNoSessionCookie is returned when a store was read successfully but held
// no matching, unexpired cookie.
var ErrNoSessionCookie = errors.New("no session cookie found")

// Cookie is one cookie read from a browser store. Value is a credential;
// only Name and Domain are safe to show the user.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires time.Time
	Secure  bool
}

// Source says where a cookie came from, for the login confirmation line.
type Source struct {
	// Browser is the product name, e.g. "Firefox".
	Browser string
	// Path is the store file the cookie was read from.
	Path string
}

// storeKind is the detected schema of a cookie store file.
type storeKind int

const (
	kindUnknown storeKind = iota
	kindFirefox
	kindChromium
)
