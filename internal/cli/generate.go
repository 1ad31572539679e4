package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wifiqr/pkg/config"
	wqerrors "github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/pipeline"
	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

// generateFlags holds flags for the generate command.
type generateFlags struct {
	credentialFlags

	level     string
	scale     int
	quietZone int

	imageFile string
	svgFile   string
	svg       bool
	console   bool
	ascii     bool
	invert    bool

	minVersion int
	maxVersion int
	svgWidth   int
	foreground string
	background string

	pickAuth bool
	debug    bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Wi-Fi QR code",
		Long: `Generate a QR code that joins a wireless network when scanned.

At least one output is required: --imagefile (png, jpeg, jpg or bmp),
--svgfile, --svg (SVG on stdout) or --console (text on stdout).

--console draws dark modules as blanks and light modules as blocks, which
scans on a dark terminal. Use --invert for a light terminal or for the
block-for-dark look of other QR tools.`,
		Example: `  # PNG for the fridge
  wifiqr generate --ssid MyNet --password secret --imagefile wifi.png

  # Prompt for the password and show the code in the terminal
  wifiqr generate --ssid MyNet --ask --console

  # Reuse a network saved in the config file
  wifiqr generate --profile guest --svgfile guest.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &flags)
		},
	}

	flags.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&flags.level, "level", qr.DefaultLevel.String(), "error correction level: low, medium, quartile or high")
	fl.IntVar(&flags.scale, "scale", pipeline.DefaultScale, "pixels per module for image files")
	fl.IntVar(&flags.quietZone, "quietzone", pipeline.DefaultBorder, "blank border around the code, in modules")
	fl.StringVar(&flags.imageFile, "imagefile", "", "write a raster image (extension selects png, jpeg, jpg or bmp)")
	fl.StringVar(&flags.svgFile, "svgfile", "", "write an SVG file")
	fl.BoolVar(&flags.svg, "svg", false, "print SVG to stdout")
	fl.BoolVar(&flags.console, "console", false, "print the code to the terminal")
	fl.BoolVar(&flags.ascii, "ascii", false, "console: draw with '#' instead of block characters")
	fl.BoolVar(&flags.invert, "invert", false, "console: draw dark modules as blocks, for light-background terminals")
	fl.IntVar(&flags.minVersion, "min-version", 0, "smallest QR version to use, 1-40 (0 for automatic)")
	fl.IntVar(&flags.maxVersion, "max-version", 0, "largest QR version to use, 1-40 (0 for automatic)")
	fl.IntVar(&flags.svgWidth, "svg-width", 0, "svg: width and height attributes in pixels (0 for none)")
	fl.StringVar(&flags.foreground, "fg", "", "svg: module color, #rgb, #rrggbb or a name (default black)")
	fl.StringVar(&flags.background, "bg", "", "svg: background color, #rgb, #rrggbb or a name (default white)")
	fl.BoolVar(&flags.pickAuth, "pick-auth", false, "choose the authentication mode interactively")
	fl.BoolVarP(&flags.debug, "debug", "d", false, "print the credentials and payload")

	cmd.MarkFlagsMutuallyExclusive("encr", "pick-auth")

	_ = cmd.RegisterFlagCompletionFunc("level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return qr.LevelNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("imagefile", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"png", "jpeg", "jpg", "bmp"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = cmd.RegisterFlagCompletionFunc("svgfile", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"svg"}, cobra.ShellCompDirectiveFilterFileExt
	})

	return cmd
}

// runGenerate validates the requested outputs, builds the code and writes
// every artifact.
func (c *CLI) runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := flags.formats()
	if err != nil {
		return err
	}

	cfg, err := flags.readConfig(cmd)
	if err != nil {
		return err
	}

	creds, err := c.credentials(cmd, &flags.credentialFlags, cfg)
	if err != nil {
		return err
	}

	if flags.pickAuth {
		auth, err := runAuthPicker(ctx, c.In, statusOut, creds.Auth)
		if err != nil {
			return err
		}
		creds.Auth = auth
	}

	opts, err := flags.options(cmd, cfg, creds, formats)
	if err != nil {
		return err
	}

	if flags.debug {
		printCredentials(creds)
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Generated QR code")

	if flags.debug {
		printKeyValue("Payload", result.Payload)
		printKeyValue("Version", strconv.Itoa(result.Stats.Version))
		printKeyValue("Modules", strconv.Itoa(result.Stats.Size))
	}

	return c.writeArtifacts(ctx, flags, creds.SSID, result)
}

// readConfig reads the config file when a profile or a render default is
// needed. A broken default file only costs the render defaults, with a
// warning; an explicit --config or a requested profile must load.
func (f *generateFlags) readConfig(cmd *cobra.Command) (*config.File, error) {
	changed := cmd.Flags().Changed
	needDefaults := !changed("level") || !changed("scale") || !changed("quietzone")

	cfg, err := loadConfig(f.configPath, f.profile != "" || needDefaults)
	if err != nil && f.configPath == "" && f.profile == "" {
		printWarning("ignoring config file: %s", wqerrors.UserMessage(err))
		return &config.File{}, nil
	}
	return cfg, err
}

// formats maps the output flags to pipeline formats. The image extension is
// checked here so a bad name fails before any encoding happens.
func (f *generateFlags) formats() ([]string, error) {
	var formats []string
	if f.svg || f.svgFile != "" {
		formats = append(formats, pipeline.FormatSVG)
	}
	if f.imageFile != "" {
		if err := wqerrors.ValidateImagePath(f.imageFile); err != nil {
			return nil, err
		}
		formats = append(formats, wqerrors.ImageFormat(f.imageFile))
	}
	if f.console {
		formats = append(formats, pipeline.FormatText)
	}
	if len(formats) == 0 {
		return nil, wqerrors.New(wqerrors.ErrCodeInvalidInput, "no output selected: use --imagefile, --svgfile, --svg or --console")
	}
	return formats, nil
}

// options builds pipeline options. Explicit flags win over config defaults,
// which win over built-in defaults.
func (f *generateFlags) options(cmd *cobra.Command, cfg *config.File, creds wifi.Credentials, formats []string) (pipeline.Options, error) {
	changed := cmd.Flags().Changed
	opts := pipeline.NewOptions(creds, formats...)

	opts.Level = cfg.Defaults.ECLevel()
	if changed("level") {
		level, err := qr.ParseLevel(f.level)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Level = level
	}

	opts.Scale = f.scale
	if !changed("scale") && cfg.Defaults.Scale > 0 {
		opts.Scale = cfg.Defaults.Scale
	}

	opts.Border = f.quietZone
	if !changed("quietzone") && cfg.Defaults.QuietZone != nil {
		opts.Border = *cfg.Defaults.QuietZone
	}

	opts.ASCII = f.ascii
	opts.Invert = f.invert
	opts.MinVersion = f.minVersion
	opts.MaxVersion = f.maxVersion
	opts.Width = f.svgWidth
	opts.Foreground = f.foreground
	opts.Background = f.background

	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// writeArtifacts writes files first, then stdout output, so status lines
// never interleave with the code drawn in the terminal.
func (c *CLI) writeArtifacts(ctx context.Context, flags *generateFlags, ssid string, result *pipeline.Result) error {
	if flags.svgFile != "" {
		if err := writeFile(flags.svgFile, result.Artifacts[pipeline.FormatSVG]); err != nil {
			return err
		}
	}
	if flags.imageFile != "" {
		data := result.Artifacts[wqerrors.ImageFormat(flags.imageFile)]
		if err := writeFile(flags.imageFile, data); err != nil {
			return err
		}
	}
	if flags.svgFile != "" || flags.imageFile != "" {
		printSuccess("Generated QR code for %s", StyleValue.Render(ssid))
		for _, path := range []string{flags.svgFile, flags.imageFile} {
			if path != "" {
				printFile(path)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if flags.svg {
		if _, err := c.Out.Write(result.Artifacts[pipeline.FormatSVG]); err != nil {
			return err
		}
	}
	if flags.console {
		if _, err := c.Out.Write(result.Artifacts[pipeline.FormatText]); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes data to path, removing a partially written file on
// failure.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		_ = os.Remove(path)
		return wqerrors.Wrap(wqerrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// printCredentials prints what is about to be encoded, password included.
func printCredentials(c wifi.Credentials) {
	printWarning("debug output includes the password")
	printKeyValue("SSID", c.SSID)
	printKeyValue("Password", c.Password)
	printKeyValue("Auth", c.Auth)
	printKeyValue("Hidden", strconv.FormatBool(c.Hidden))
	printKeyValue("Quote", strconv.FormatBool(c.Quote))
}
