package wifi

import (
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/wifiqr/pkg/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		c    Credentials
		want string
	}{
		{
			name: "wpa2 visible",
			c:    Credentials{SSID: "test", Password: "password", Auth: "WPA2"},
			want: "WIFI:T:WPA2;S:test;P:password;;",
		},
		{
			name: "escaped ssid",
			c:    Credentials{SSID: `"foo;bar\baz"`, Password: "randompassword", Auth: "wpa2"},
			want: `WIFI:T:WPA2;S:\"foo\;bar\\baz\";P:randompassword;;`,
		},
		{
			name: "nopass visible",
			c:    Credentials{SSID: "test", Auth: "nopass"},
			want: "WIFI:T:nopass;S:test;;",
		},
		{
			name: "quoted fields",
			c:    Credentials{SSID: "test", Password: "password", Auth: "wpa2", Quote: true},
			want: `WIFI:T:WPA2;S:"test";P:"password";;`,
		},
		{
			name: "nopass hidden",
			c:    Credentials{SSID: "test", Auth: "nopass", Hidden: true},
			want: "WIFI:T:nopass;S:test;H:true;;",
		},
		{
			name: "hidden with password",
			c:    Credentials{SSID: `"foo;bar\baz"`, Password: "randompassword", Auth: "WPA2", Hidden: true},
			want: `WIFI:T:WPA2;S:\"foo\;bar\\baz\";P:randompassword;H:true;;`,
		},
		{
			name: "empty auth means nopass",
			c:    Credentials{SSID: "test"},
			want: "WIFI:T:nopass;S:test;;",
		},
		{
			name: "empty auth hidden",
			c:    Credentials{SSID: "test", Hidden: true},
			want: "WIFI:T:nopass;S:test;H:true;;",
		},
		{
			name: "upper case nopass renders canonical",
			c:    Credentials{SSID: "test", Auth: "NOPASS"},
			want: "WIFI:T:nopass;S:test;;",
		},
		{
			name: "wep",
			c:    Credentials{SSID: "test", Password: "password", Auth: "wep"},
			want: "WIFI:T:WEP;S:test;P:password;;",
		},
		{
			name: "wpa",
			c:    Credentials{SSID: "test", Password: "password", Auth: "WPA"},
			want: "WIFI:T:WPA;S:test;P:password;;",
		},
		{
			name: "wpa3",
			c:    Credentials{SSID: "test", Password: "password", Auth: "wpa3"},
			want: "WIFI:T:WPA3;S:test;P:password;;",
		},
		{
			name: "unknown auth passes through upper-cased",
			c:    Credentials{SSID: "test", Password: "password", Auth: "sae"},
			want: "WIFI:T:SAE;S:test;P:password;;",
		},
		{
			name: "quote leaves escaped ssid unquoted",
			c:    Credentials{SSID: "a:b", Password: "plain", Auth: "wpa2", Quote: true},
			want: `WIFI:T:WPA2;S:a\:b;P:"plain";;`,
		},
		{
			name: "quote leaves escaped password unquoted",
			c:    Credentials{SSID: "cafe", Password: `pa;ss`, Auth: "wpa2", Quote: true},
			want: `WIFI:T:WPA2;S:"cafe";P:pa\;ss;;`,
		},
		{
			name: "quote on open network",
			c:    Credentials{SSID: "deadbeef", Auth: "nopass", Quote: true},
			want: `WIFI:T:nopass;S:"deadbeef";;`,
		},
		{
			name: "quote hidden",
			c:    Credentials{SSID: "test", Password: "password", Auth: "wpa2", Hidden: true, Quote: true},
			want: `WIFI:T:WPA2;S:"test";P:"password";H:true;;`,
		},
		{
			name: "reserved characters in auth are escaped",
			c:    Credentials{SSID: "test", Password: "password", Auth: "wpa;x"},
			want: `WIFI:T:WPA\;X;S:test;P:password;;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.c.Format()
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValidation(t *testing.T) {
	tests := []struct {
		name string
		c    Credentials
		code errors.Code
	}{
		{"nopass with password", Credentials{SSID: `"foo;bar\baz"`, Password: "password", Auth: "nopass"}, errors.ErrCodeIncompatibleAuthPassword},
		{"empty auth with password", Credentials{SSID: "test", Password: "password"}, errors.ErrCodeIncompatibleAuthPassword},
		{"NoPass with password", Credentials{SSID: "test", Password: "password", Auth: "NoPass"}, errors.ErrCodeIncompatibleAuthPassword},
		{"wpa without password", Credentials{SSID: "bane", Auth: "wpa"}, errors.ErrCodeMissingRequiredPassword},
		{"wpa2 without password", Credentials{SSID: `"foo;bar\baz"`, Auth: "wpa2"}, errors.ErrCodeMissingRequiredPassword},
		{"wep without password", Credentials{SSID: `"foo;bar\baz"`, Auth: "wep"}, errors.ErrCodeMissingRequiredPassword},
		{"unknown auth without password", Credentials{SSID: "test", Auth: "sae", Hidden: true}, errors.ErrCodeMissingRequiredPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.c.Format()
			if err == nil {
				t.Fatalf("Format() = %q, want error %s", got, tt.code)
			}
			if got != "" {
				t.Errorf("Format() returned partial string %q on failure", got)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Format() error = %v, want code %s", err, tt.code)
			}
			if !errors.IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	c := Credentials{SSID: `we:ird"net`, Password: `p\w;d`, Auth: "wpa2", Hidden: true, Quote: true}
	first, err := c.Format()
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Format(c)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if again != first {
			t.Errorf("Format() = %q, want %q", again, first)
		}
	}
}

func TestFormatConcurrent(t *testing.T) {
	c := New("test", "password", "wpa2")
	want := "WIFI:T:WPA2;S:test;P:password;;"

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, err := c.Format(); err != nil || got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Format() = %q, want %q", got, want)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{`\`, `\\`},
		{`"`, `\"`},
		{";", `\;`},
		{":", `\:`},
		{`\;`, `\\\;`},
		{`"foo;bar\baz"`, `\"foo\;bar\\baz\"`},
		{"a,b", "a,b"},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// unescape reverses Escape; used to check nothing was escaped twice.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		`\\\\`,
		`::;;""`,
		`a\"b`,
		`"quoted"`,
		`C:\Users\guest;net`,
		`trailing\`,
	}

	for _, in := range inputs {
		out := Escape(in)
		if got := unescape(out); got != in {
			t.Errorf("unescape(Escape(%q)) = %q", in, got)
		}

		reserved := strings.Count(in, `\`) + strings.Count(in, `"`) + strings.Count(in, ";") + strings.Count(in, ":")
		if got, want := len(out)-len(in), reserved; got != want {
			t.Errorf("Escape(%q) added %d backslashes, want %d", in, got, want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		escaped string
		enabled bool
		want    string
	}{
		{"disabled", "abc", "abc", false, "abc"},
		{"enabled plain", "abc", "abc", true, `"abc"`},
		{"enabled escaped", "a;c", `a\;c`, true, `a\;c`},
		{"disabled escaped", "a;c", `a\;c`, false, `a\;c`},
		{"enabled empty", "", "", true, `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.field, tt.escaped, tt.enabled); got != tt.want {
				t.Errorf("quote(%q, %q, %v) = %q, want %q", tt.field, tt.escaped, tt.enabled, got, tt.want)
			}
		})
	}
}

func TestNormalizeAuth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "nopass"},
		{"nopass", "nopass"},
		{"NOPASS", "NOPASS"},
		{"wpa2", "WPA2"},
		{"Wpa3", "WPA3"},
		{"wep", "WEP"},
		{"WPA", "WPA"},
		{"custom", "CUSTOM"},
	}

	for _, tt := range tests {
		if got := NormalizeAuth(tt.in); got != tt.want {
			t.Errorf("NormalizeAuth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsNoPass(t *testing.T) {
	for _, s := range []string{"", "nopass", "NOPASS", "NoPass"} {
		if !IsNoPass(s) {
			t.Errorf("IsNoPass(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"wpa", "nopass2", " nopass"} {
		if IsNoPass(s) {
			t.Errorf("IsNoPass(%q) = true, want false", s)
		}
	}
}

func TestKnownAuthModes(t *testing.T) {
	modes := KnownAuthModes()
	if len(modes) != 5 {
		t.Fatalf("KnownAuthModes() returned %d modes, want 5", len(modes))
	}
	if modes[0] != DefaultAuth {
		t.Errorf("KnownAuthModes()[0] = %q, want default %q", modes[0], DefaultAuth)
	}
}
