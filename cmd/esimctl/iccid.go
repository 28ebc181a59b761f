package main

import (
	"fmt"

	"github.com/metinatakli/esim-marketplace/internal/iccid"
	"github.com/spf13/cobra"
)

func iccidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "iccid [raw]",
		Short: "Normalize an ICCID and report its validity",
		Long: `Strip every non-digit from the input and report whether the result
has a valid ICCID length (18 to 22 digits) and whether it also passes the
Luhn checksum.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "normalized:     %s\n", iccid.Normalize(raw))
			fmt.Fprintf(out, "valid:          %t\n", iccid.IsValid(raw))
			fmt.Fprintf(out, "strictly valid: %t\n", iccid.IsStrictlyValid(raw))

			return nil
		},
	}
}
