package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// payloadCommand creates the payload command, which prints the WIFI: string
// without rendering it.
func (c *CLI) payloadCommand() *cobra.Command {
	flags := credentialFlags{}

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the WIFI: string for a network",
		Long: `Print the WIFI: configuration string that a QR code would carry.

Useful for piping into other QR tools or checking escaping.`,
		Example: `  wifiqr payload --ssid 'Cafe;Bar' --password 'pa:ss'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath, flags.profile != "")
			if err != nil {
				return err
			}
			creds, err := c.credentials(cmd, &flags, cfg)
			if err != nil {
				return err
			}
			payload, err := c.newRunner().Payload(cmd.Context(), creds)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.Out, payload)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
