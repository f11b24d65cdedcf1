package ecbprobe

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// -----------------------------------------------------------------------------

const (
	// DefaultTitle is the report heading used by the command.
	DefaultTitle = "Go AES-ECB Test"
)

// -----------------------------------------------------------------------------

// WriteReport renders the comparison as the fixed labeled layout, hex values in lowercase.
// The last line carries the decrypted reference or, if decryption was not possible, the error.
func WriteReport(w io.Writer, title string, c *Comparison) error {
	if c == nil {
		return errors.New("nil comparison")
	}

	sb := strings.Builder{}
	_, _ = fmt.Fprintf(&sb, "=== %s ===\n", title)
	_, _ = fmt.Fprintf(&sb, "Key:  %s\n", EncodeHex(c.Key))
	_, _ = fmt.Fprintf(&sb, "Data: %s\n", EncodeHex(c.Plaintext))
	_, _ = fmt.Fprintf(&sb, "Encrypted: %s\n", EncodeHex(c.Computed))
	_, _ = sb.WriteString("\n")
	_, _ = fmt.Fprintf(&sb, "PHP produced: %s\n", EncodeHex(c.Reference))
	_, _ = sb.WriteString("\n")
	if c.DecryptErr != nil {
		_, _ = fmt.Fprintf(&sb, "Error: %s\n", c.DecryptErr.Error())
	} else {
		_, _ = fmt.Fprintf(&sb, "If we decrypt PHP's result: %s\n", EncodeHex(c.DecryptedReference))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
