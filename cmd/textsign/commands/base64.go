package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vitalvas/textsign/codec"
	"github.com/vitalvas/textsign/source"
)

func newBase64Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Base64 encode or decode",
	}

	cmd.AddCommand(newBase64EncodeCmd(), newBase64DecodeCmd())

	return cmd
}

func newBase64EncodeCmd() *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode input as base64",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := codec.ParseFormat(format)
			if err != nil {
				return err
			}

			in, err := openInput(input)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := codec.Encode(in, f)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}

	base64Flags(cmd, &input, &format)

	return cmd
}

func newBase64DecodeCmd() *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode base64 input and write the raw bytes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := codec.ParseFormat(format)
			if err != nil {
				return err
			}

			in, err := openInput(input)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := codec.Decode(in, f)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	base64Flags(cmd, &input, &format)

	return cmd
}

func base64Flags(cmd *cobra.Command, input, format *string) {
	cmd.Flags().StringVarP(input, "input", "i", source.Stdin, `input file, "-" for standard input`)
	cmd.Flags().StringVar(format, "format", string(codec.FormatStandard), "base64 format: standard or urlsafe")
}
