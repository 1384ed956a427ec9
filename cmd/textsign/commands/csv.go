package commands

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/vitalvas/textsign/csvconv"
	"github.com/vitalvas/textsign/source"
)

func newCSVCmd() *cobra.Command {
	var input, output, format, delimiter string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Convert a CSV file with a header row to JSON, YAML or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := csvconv.ParseFormat(format)
			if err != nil {
				return err
			}

			comma, size := utf8.DecodeRuneInString(delimiter)
			if comma == utf8.RuneError || size != len(delimiter) {
				return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
			}

			in, err := openInput(input)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := csvconv.Convert(in, f, comma)
			if err != nil {
				return err
			}

			if output == source.Stdin {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			if output == "" {
				output = "output." + string(f)
			}

			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", source.Stdin, `CSV file, "-" for standard input`)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for standard output (default "output.<format>")`)
	cmd.Flags().StringVar(&format, "format", string(csvconv.FormatJSON), "output format: json, yaml or toml")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "field delimiter")

	return cmd
}
