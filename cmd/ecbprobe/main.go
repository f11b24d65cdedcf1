package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mxmauro/ecbprobe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command. The report goes to out, diagnostics to errOut.
func newRootCmd(out io.Writer, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ecbprobe",
		Short: "Compare local AES-ECB output against a captured PHP ciphertext",
		Long: `ecbprobe encrypts sixteen 0x55 bytes under an all-zero AES-128 key in ECB mode,
prints the result next to the ciphertext captured from the PHP implementation and
decrypts the PHP ciphertext with the same key to confirm both implementations agree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logrus.New()
			l.SetOutput(errOut)
			l.SetLevel(logrus.WarnLevel)

			return run(out, logrus.NewEntry(l))
		},
	}
}

func run(out io.Writer, log *logrus.Entry) error {
	p, err := ecbprobe.New(ecbprobe.Options{
		Logger: log,
	})
	if err != nil {
		return err
	}

	v := ecbprobe.PHPReferenceVector()
	defer v.Zeroize()

	cmp, err := p.CompareVector(v)
	if err != nil {
		return err
	}
	defer cmp.Zeroize()

	return ecbprobe.WriteReport(out, ecbprobe.DefaultTitle, cmp)
}
