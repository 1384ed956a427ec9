package commands

import (
	"github.com/spf13/cobra"
	"github.com/vitalvas/textsign/config"
	"github.com/vitalvas/textsign/log"
	"github.com/vitalvas/textsign/signserver"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP signing service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := signserver.New(a.cfg)
			if err != nil {
				return err
			}

			defer log.Sync()

			return srv.ListenAndServe(cmd.Context())
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.String("addr", d.Server.Addr, "listen address")
	flags.Int64("max-body-bytes", d.Server.MaxBodyBytes, "maximum request body size")
	flags.Int("max-conns", d.Server.MaxConns, "maximum concurrent connections")
	flags.String("blake3-key", "", "blake3 key file")
	flags.String("ed25519-signing-key", "", "ed25519 signing key file")
	flags.String("ed25519-verifying-key", "", "ed25519 verifying key file")

	a.bind(flags, "server.addr", "addr")
	a.bind(flags, "server.maxBodyBytes", "max-body-bytes")
	a.bind(flags, "server.maxConns", "max-conns")
	a.bind(flags, "keys.blake3", "blake3-key")
	a.bind(flags, "keys.ed25519Signing", "ed25519-signing-key")
	a.bind(flags, "keys.ed25519Verifying", "ed25519-verifying-key")

	return cmd
}
