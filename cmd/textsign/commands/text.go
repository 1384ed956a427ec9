package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vitalvas/textsign/log"
	"github.com/vitalvas/textsign/source"
	"github.com/vitalvas/textsign/textsign"
)

func newSignCmd() *cobra.Command {
	var input, key, format string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message and print the URL-safe base64 tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, err := textsign.ParseAlgorithm(format)
			if err != nil {
				return err
			}

			in, k, err := openSources(input, key)
			if err != nil {
				return err
			}
			defer in.Close()
			defer k.Close()

			tag, err := textsign.Sign(in, k, alg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tag)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", source.Stdin, `message file, "-" for standard input`)
	cmd.Flags().StringVarP(&key, "key", "k", "", "key file (symmetric key or ed25519 signing key)")
	algorithmFlag(cmd, &format)
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	var input, key, format, sig string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a message against a tag and print true or false",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, err := textsign.ParseAlgorithm(format)
			if err != nil {
				return err
			}

			in, k, err := openSources(input, key)
			if err != nil {
				return err
			}
			defer in.Close()
			defer k.Close()

			ok, err := textsign.Verify(in, k, alg, sig)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", source.Stdin, `message file, "-" for standard input`)
	cmd.Flags().StringVarP(&key, "key", "k", "", "key file (symmetric key or ed25519 verifying key)")
	cmd.Flags().StringVarP(&sig, "sig", "s", "", "tag to verify, URL-safe base64 without padding")
	algorithmFlag(cmd, &format)
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("sig")

	return cmd
}

// Key file names written by the generate command.
const (
	blake3KeyFile     = "blake3.txt"
	ed25519SigningKey = "ed25519.sk"
	ed25519PublicKey  = "ed25519.pk"
)

type keyFile struct {
	name string
	perm os.FileMode
}

// keyFiles names the files for the buffers returned by Generate, in order.
func keyFiles(alg textsign.Algorithm) []keyFile {
	if alg == textsign.AlgorithmEd25519 {
		return []keyFile{{ed25519SigningKey, 0o600}, {ed25519PublicKey, 0o644}}
	}

	return []keyFile{{blake3KeyFile, 0o600}}
}

func newGenerateCmd() *cobra.Command {
	var output, format string
	var printable, force bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key (blake3) or key pair (ed25519) into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, err := textsign.ParseAlgorithm(format)
			if err != nil {
				return err
			}

			info, err := os.Stat(output)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", output)
			}

			keys, err := textsign.Generator{Printable: printable}.Generate(alg)
			if err != nil {
				return err
			}

			files := keyFiles(alg)
			if !force {
				for _, f := range files {
					path := filepath.Join(output, f.name)
					if _, err := os.Lstat(path); err == nil {
						return fmt.Errorf("%s: %w, use --force to replace it", path, os.ErrExist)
					}
				}
			}

			for i, f := range files {
				path := filepath.Join(output, f.name)
				if err := writeKeyFile(path, keys[i], f.perm, force); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "directory to write key files to")
	cmd.Flags().BoolVar(&printable, "printable", false, "mint blake3 keys from printable password characters")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing key files")
	algorithmFlag(cmd, &format)

	return cmd
}

// writeKeyFile creates path with perm. With force an existing file is
// truncated and its mode reset to perm before the key is written.
func writeKeyFile(path string, data []byte, perm os.FileMode, force bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return err
	}

	if force {
		if info, err := f.Stat(); err == nil && info.Mode().Perm() != perm {
			log.Warnf("resetting mode of %s from %s to %s", path, info.Mode().Perm(), perm)
		}

		if err := f.Chmod(perm); err != nil {
			f.Close()
			return err
		}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
