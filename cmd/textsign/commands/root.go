// Package commands implements the textsign command line.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vitalvas/textsign/config"
	"github.com/vitalvas/textsign/log"
	"github.com/vitalvas/textsign/source"
	"github.com/vitalvas/textsign/textsign"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	viper      *viper.Viper
	configPath string
	cfg        config.Config
}

// New returns the root command with all subcommands attached.
func New() *cobra.Command {
	a := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:           "textsign",
		Short:         "Sign and verify text with BLAKE3 keyed hashes or Ed25519 signatures",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-output", "", "log output: stdout, stderr or a file path")
	a.bind(flags, "logLevel", "log-level")
	a.bind(flags, "logOutput", "log-output")

	root.AddCommand(
		newSignCmd(),
		newVerifyCmd(),
		newGenerateCmd(),
		newGenpassCmd(),
		newBase64Cmd(),
		newCSVCmd(),
		newServeCmd(a),
		newConfigCmd(a),
	)

	return root
}

func (a *app) bind(flags *pflag.FlagSet, key, name string) {
	if err := a.viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}

	if err := log.Init(cfg.LogLevel, cfg.LogOutput); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	log.Debugf("running %s", cmd.CommandPath())

	return nil
}

// algorithmFlag adds the -f/--format flag selecting the algorithm.
func algorithmFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVarP(value, "format", "f", textsign.AlgorithmBlake3.String(), "algorithm: blake3 or ed25519")
}

// openInput validates and opens a single input source.
func openInput(name string) (io.ReadCloser, error) {
	if err := source.Check(name); err != nil {
		return nil, err
	}

	return source.Open(name)
}

// openSources validates and opens the message and key sources. At most one
// of them may be standard input.
func openSources(input, key string) (io.ReadCloser, io.ReadCloser, error) {
	if input == source.Stdin && key == source.Stdin {
		return nil, nil, fmt.Errorf("input and key cannot both be read from standard input")
	}

	for _, name := range []string{input, key} {
		if err := source.Check(name); err != nil {
			return nil, nil, err
		}
	}

	in, err := source.Open(input)
	if err != nil {
		return nil, nil, err
	}

	k, err := source.Open(key)
	if err != nil {
		in.Close()
		return nil, nil, err
	}

	return in, k, nil
}
