package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vitalvas/textsign/genpass"
)

func newGenpassCmd() *cobra.Command {
	var opts genpass.Options

	cmd := &cobra.Command{
		Use:   "genpass",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := genpass.Generate(opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pass)

			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Length, "length", "l", genpass.DefaultLength, "password length")
	cmd.Flags().BoolVar(&opts.NoUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&opts.NoLower, "no-lower", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&opts.NoNumbers, "no-numbers", false, "exclude digits")
	cmd.Flags().BoolVar(&opts.NoSymbols, "no-symbols", false, "exclude symbols")

	return cmd
}
