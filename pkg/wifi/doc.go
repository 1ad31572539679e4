// Package wifi turns wireless network credentials into the "WIFI:" string
// that QR code scanners understand.
//
// # Format
//
// The string follows the ZXing convention for network configuration
// barcodes:
//
//	WIFI:T:<auth>;S:<ssid>;P:<password>;H:true;;
//
// The T field carries the authentication mode. Anything other than nopass is
// upper-cased because some scanners (notably iOS) reject lower-case tags.
// The P field is omitted for open networks and the H field is only written
// for hidden networks.
//
// # Escaping
//
// The characters \ " ; and : are escaped with a backslash in the SSID,
// password and authentication fields. Backslash is always escaped first so
// the backslashes introduced for the other characters are not escaped again.
//
// With [Credentials.Quote] set, an SSID or password that needed no escaping
// is wrapped in double quotes so that scanners do not read values such as
// "deadbeef" as hexadecimal. Quoting and escaping never apply to the same
// field.
//
// # Usage
//
//	c := wifi.New("MyNet", "secret", "wpa2")
//	s, err := c.Format()
//	if errors.IsValidation(err) {
//	    // ask the user for a different password or auth mode
//	}
//	// s == "WIFI:T:WPA2;S:MyNet;P:secret;;"
//
// [Credentials] is a plain value. Format has no side effects and may be
// called from any number of goroutines.
package wifi
