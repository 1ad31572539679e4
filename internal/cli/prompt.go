package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	wqerrors "github.com/matzehuels/wifiqr/pkg/errors"
)

// promptPassword asks for the password of ssid on out and reads one line
// from in. Without echo and with a terminal on in, the typed characters are
// hidden. When in is not a terminal (a pipe, a test buffer) the line is read
// as-is.
func promptPassword(in io.Reader, out io.Writer, ssid string, echo bool) (string, error) {
	fmt.Fprintf(out, "Password for %q: ", ssid)

	if !echo {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", wqerrors.Wrap(wqerrors.ErrCodeInvalidInput, err, "read password")
			}
			return string(b), nil
		}
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", wqerrors.Wrap(wqerrors.ErrCodeInvalidInput, err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
