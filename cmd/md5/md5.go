// Package md5 provides the MD5 digest command.
package md5

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/devkit/internal/textutil"
)

// NewCommand returns the md5 command.
func NewCommand() *cobra.Command {
	var (
		ostr string
		opts textutil.MD5Options
	)

	cmd := &cobra.Command{
		Use:   "md5",
		Short: "MD5 encryption",
		Long: `Prints the hex MD5 digest of a string.

Examples:
  devkit md5 --ostr hello
  devkit md5 --ostr hello --upper --is16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), textutil.MD5Hex(ostr, opts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&ostr, "ostr", "o", "", "The original string that needs to be encrypted (required)")
	cmd.Flags().BoolVarP(&opts.Upper, "upper", "u", false, "Print the digest in uppercase")
	cmd.Flags().BoolVarP(&opts.Short, "is16", "i", false, "Print the 16-character digest instead of 32")
	_ = cmd.MarkFlagRequired("ostr")

	return cmd
}
