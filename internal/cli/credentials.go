package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wifiqr/pkg/config"
	wqerrors "github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

// credentialFlags holds the flags shared by every command that builds a
// payload.
type credentialFlags struct {
	ssid       string
	password   string
	encr       string
	hidden     bool
	quote      bool
	ask        bool
	askEcho    bool
	profile    string
	configPath string
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.ssid, "ssid", "", "network name")
	fl.StringVar(&f.password, "password", "", "network password")
	fl.StringVar(&f.encr, "encr", wifi.DefaultAuth, "authentication mode: nopass, wep, wpa, wpa2 or wpa3")
	fl.BoolVar(&f.hidden, "hidden", false, "mark the network as hidden")
	fl.BoolVar(&f.quote, "quote", false, "wrap SSID and password in double quotes when they need no escaping")
	fl.BoolVarP(&f.ask, "ask", "a", false, "prompt for the password without echo")
	fl.BoolVar(&f.askEcho, "ask-echo", false, "prompt for the password and echo it")
	fl.StringVar(&f.profile, "profile", "", "load credentials from a named [[network]] in the config file")
	fl.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wifiqr/config.toml)")

	cmd.MarkFlagsMutuallyExclusive("password", "ask", "ask-echo")

	_ = cmd.RegisterFlagCompletionFunc("encr", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return wifi.KnownAuthModes(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("profile", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return f.profileNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// profileNames lists the networks in the config file for completion.
// A missing or broken file completes to nothing.
func (f *credentialFlags) profileNames() []string {
	cfg, err := loadConfig(f.configPath, true)
	if err != nil {
		return nil
	}
	return cfg.NetworkNames()
}

// loadConfig reads the file given by --config. Without --config the default
// location is only read when needed, so an unrelated broken file does not
// get in the way.
func loadConfig(path string, needed bool) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	if !needed {
		return &config.File{}, nil
	}
	return config.LoadDefault()
}

// credentials merges the selected profile with the flags. A flag overrides
// the profile only when it was set explicitly.
func (c *CLI) credentials(cmd *cobra.Command, f *credentialFlags, cfg *config.File) (wifi.Credentials, error) {
	creds := wifi.New(f.ssid, f.password, f.encr)
	creds.Hidden = f.hidden
	creds.Quote = f.quote

	if f.profile != "" {
		p, err := cfg.Network(f.profile)
		if err != nil {
			return wifi.Credentials{}, err
		}
		changed := cmd.Flags().Changed
		if changed("ssid") {
			p.SSID = f.ssid
		}
		if changed("password") {
			p.Password = f.password
		}
		if changed("encr") {
			p.Auth = f.encr
		}
		if changed("hidden") {
			p.Hidden = f.hidden
		}
		if changed("quote") {
			p.Quote = f.quote
		}
		creds = p
	}

	if creds.SSID == "" {
		return wifi.Credentials{}, wqerrors.New(wqerrors.ErrCodeInvalidInput, "--ssid is required (or use --profile)")
	}

	if f.ask || f.askEcho {
		pw, err := promptPassword(c.In, statusOut, creds.SSID, f.askEcho)
		if err != nil {
			return wifi.Credentials{}, err
		}
		creds.Password = pw
	}
	return creds, nil
}
