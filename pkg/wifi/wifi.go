package wifi

import (
	"strings"

	"github.com/matzehuels/wifiqr/pkg/errors"
)

// Well-known authentication modes. The set is open: unknown tags are passed
// through upper-cased.
const (
	AuthNoPass = "nopass"
	AuthWEP    = "wep"
	AuthWPA    = "wpa"
	AuthWPA2   = "wpa2"
	AuthWPA3   = "wpa3"
)

// DefaultAuth is the mode used by the CLI when none is given.
const DefaultAuth = AuthWPA2

// KnownAuthModes returns the well-known modes in display order.
func KnownAuthModes() []string {
	return []string{AuthWPA2, AuthWPA3, AuthWPA, AuthWEP, AuthNoPass}
}

// Credentials describes a wireless network.
type Credentials struct {
	SSID     string `json:"ssid" toml:"ssid"`
	Password string `json:"password,omitempty" toml:"password"`
	Auth     string `json:"auth,omitempty" toml:"auth"`
	Hidden   bool   `json:"hidden,omitempty" toml:"hidden"`
	Quote    bool   `json:"quote,omitempty" toml:"quote"`
}

// New returns visible, unquoted credentials.
func New(ssid, password, auth string) Credentials {
	return Credentials{SSID: ssid, Password: password, Auth: auth}
}

// escapes is applied in order. The backslash entry must stay first.
var escapes = []struct{ find, replace string }{
	{`\`, `\\`},
	{`"`, `\"`},
	{`;`, `\;`},
	{`:`, `\:`},
}

// Escape backslash-escapes the reserved characters \ " ; and : in field.
func Escape(field string) string {
	for _, e := range escapes {
		field = strings.ReplaceAll(field, e.find, e.replace)
	}
	return field
}

// quote wraps escaped in double quotes when enabled and escaping left the
// field untouched. Escaped content is never quoted.
func quote(field, escaped string, enabled bool) string {
	if enabled && escaped == field {
		return `"` + escaped + `"`
	}
	return escaped
}

// IsNoPass reports whether token means "no password": empty or nopass in any case.
func IsNoPass(token string) bool {
	return token == "" || strings.EqualFold(token, AuthNoPass)
}

// NormalizeAuth returns the T field value for token. Empty becomes nopass,
// nopass keeps its case and every other token is upper-cased.
func NormalizeAuth(token string) string {
	switch {
	case token == "":
		return AuthNoPass
	case IsNoPass(token):
		return token
	default:
		return strings.ToUpper(token)
	}
}

// Validate checks the auth/password pairing. The first failing rule wins.
func (c Credentials) Validate() error {
	if IsNoPass(c.Auth) && c.Password != "" {
		return errors.New(errors.ErrCodeIncompatibleAuthPassword,
			"nopass cannot be paired with a non-empty password (set an auth mode such as wpa2)")
	}
	if c.Password == "" && !IsNoPass(c.Auth) {
		return errors.New(errors.ErrCodeMissingRequiredPassword,
			"authentication mode %s requires a password", NormalizeAuth(c.Auth))
	}
	return nil
}

// layout selects one of the four output templates.
type layout int

const (
	noPassVisible layout = iota
	noPassHidden
	authVisible
	authHidden
)

func (c Credentials) layout() layout {
	switch {
	case c.Password == "" && c.Hidden:
		return noPassHidden
	case c.Password == "":
		return noPassVisible
	case c.Hidden:
		return authHidden
	default:
		return authVisible
	}
}

// Format validates c and returns its WIFI: string. On failure the error
// carries errors.ErrCodeIncompatibleAuthPassword or
// errors.ErrCodeMissingRequiredPassword and the string is empty.
func (c Credentials) Format() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	ssid := quote(c.SSID, Escape(c.SSID), c.Quote)
	auth := Escape(NormalizeAuth(c.Auth))
	password := quote(c.Password, Escape(c.Password), c.Quote)

	switch c.layout() {
	case noPassHidden:
		return "WIFI:T:nopass;S:" + ssid + ";H:true;;", nil
	case noPassVisible:
		return "WIFI:T:nopass;S:" + ssid + ";;", nil
	case authHidden:
		return "WIFI:T:" + auth + ";S:" + ssid + ";P:" + password + ";H:true;;", nil
	default:
		return "WIFI:T:" + auth + ";S:" + ssid + ";P:" + password + ";;", nil
	}
}

// Format is shorthand for c.Format().
func Format(c Credentials) (string, error) {
	return c.Format()
}
