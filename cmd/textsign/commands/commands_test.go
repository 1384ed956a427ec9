package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/textsign/codec"
	"github.com/vitalvas/textsign/csvconv"
	"github.com/vitalvas/textsign/source"
	"github.com/vitalvas/textsign/textsign"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	return strings.TrimSpace(out.String()), err
}

func writeMessage(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestSignVerifyBlake3(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "-f", "blake3", "-o", dir)
	require.NoError(t, err)

	keyPath := filepath.Join(dir, blake3KeyFile)
	assert.Equal(t, keyPath, out)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, int64(textsign.SymmetricKeySize), info.Size())
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	hello := writeMessage(t, dir, "hello.txt", "hello")
	hellp := writeMessage(t, dir, "hellp.txt", "hellp")

	tag, err := run(t, "sign", "-f", "blake3", "-i", hello, "-k", keyPath)
	require.NoError(t, err)

	raw, err := textsign.DecodeTag(tag)
	require.NoError(t, err)
	assert.Len(t, raw, textsign.Blake3TagSize)

	out, err = run(t, "verify", "-f", "blake3", "-i", hello, "-k", keyPath, "-s", tag)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = run(t, "verify", "-f", "blake3", "-i", hellp, "-k", keyPath, "-s", tag)
	require.NoError(t, err)
	assert.Equal(t, "false", out)
}

func TestSignVerifyEd25519(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "-f", "ed25519", "-o", dir)
	require.NoError(t, err)

	sk := filepath.Join(dir, ed25519SigningKey)
	pk := filepath.Join(dir, ed25519PublicKey)
	assert.Equal(t, sk+"\n"+pk, out)

	info, err := os.Stat(pk)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	hello := writeMessage(t, dir, "hello.txt", "hello")

	tag, err := run(t, "sign", "-f", "ed25519", "-i", hello, "-k", sk)
	require.NoError(t, err)

	out, err = run(t, "verify", "-f", "ed25519", "-i", hello, "-k", pk, "-s", tag)
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	t.Run("unrelated verifying key", func(t *testing.T) {
		other := t.TempDir()
		_, err := run(t, "generate", "-f", "ed25519", "-o", other)
		require.NoError(t, err)

		out, err := run(t, "verify", "-f", "ed25519", "-i", hello, "-k", filepath.Join(other, ed25519PublicKey), "-s", tag)
		require.NoError(t, err)
		assert.Equal(t, "false", out)
	})

	t.Run("short signature", func(t *testing.T) {
		_, err := run(t, "verify", "-f", "ed25519", "-i", hello, "-k", pk, "-s", textsign.EncodeTag(make([]byte, 10)))
		assert.ErrorIs(t, err, textsign.ErrSignatureFormat)
	})
}

func TestSignFromStdin(t *testing.T) {
	orig := source.StdinReader
	defer func() { source.StdinReader = orig }()

	dir := t.TempDir()
	_, err := run(t, "generate", "-f", "blake3", "-o", dir, "--printable")
	require.NoError(t, err)

	keyPath := filepath.Join(dir, blake3KeyFile)

	source.StdinReader = strings.NewReader("hello")
	tag, err := run(t, "sign", "-k", keyPath)
	require.NoError(t, err)

	source.StdinReader = strings.NewReader("hello")
	out, err := run(t, "verify", "-k", keyPath, "-s", tag)
	require.NoError(t, err)
	assert.Equal(t, "true", out)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	hello := writeMessage(t, dir, "hello.txt", "hello")
	shortKey := writeMessage(t, dir, "short.key", "0123456789")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "short key",
			args:    []string{"sign", "-i", hello, "-k", shortKey},
			wantErr: textsign.ErrKeyLength,
		},
		{
			name:    "missing key file",
			args:    []string{"sign", "-i", hello, "-k", filepath.Join(dir, "missing")},
			wantErr: source.ErrNotExist,
		},
		{
			name:    "unknown format",
			args:    []string{"sign", "-f", "rsa", "-i", hello, "-k", shortKey},
			wantErr: textsign.ErrUnknownAlgorithm,
		},
		{
			name:    "malformed tag",
			args:    []string{"verify", "-i", hello, "-k", shortKey, "-s", "!!"},
			wantErr: textsign.ErrTagEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("both sources on stdin", func(t *testing.T) {
		_, err := run(t, "sign", "-i", "-", "-k", "-")
		assert.Error(t, err)
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, err := run(t, "sign", "-i", hello)
		assert.Error(t, err)
	})

	t.Run("generate into a file", func(t *testing.T) {
		_, err := run(t, "generate", "-o", hello)
		assert.Error(t, err)
	})
}

func TestGenpass(t *testing.T) {
	out, err := run(t, "genpass", "-l", "24", "--no-symbols")
	require.NoError(t, err)

	assert.Len(t, out, 24)
	assert.False(t, strings.ContainsAny(out, "!@#$%^&*_"))

	_, err = run(t, "genpass", "-l", "2")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textsign.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, path, out)

	out, err = run(t, "--config", path, "--log-level", "warn", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "logLevel: warn")
	assert.Contains(t, out, "addr: 127.0.0.1:8080")

	_, err = run(t, "config", "init", path)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestGenerateKeepsExistingKeys(t *testing.T) {
	dir := t.TempDir()
	sk := filepath.Join(dir, ed25519SigningKey)
	old := []byte("previous signing key material!!!")
	require.NoError(t, os.WriteFile(sk, old, 0o644))
	require.NoError(t, os.Chmod(sk, 0o644))

	_, err := run(t, "generate", "-f", "ed25519", "-o", dir)
	assert.ErrorIs(t, err, os.ErrExist)

	b, err := os.ReadFile(sk)
	require.NoError(t, err)
	assert.Equal(t, old, b)

	_, err = os.Stat(filepath.Join(dir, ed25519PublicKey))
	assert.ErrorIs(t, err, os.ErrNotExist)

	t.Run("force replaces and restricts the mode", func(t *testing.T) {
		_, err := run(t, "generate", "-f", "ed25519", "-o", dir, "--force")
		require.NoError(t, err)

		b, err := os.ReadFile(sk)
		require.NoError(t, err)
		assert.Len(t, b, 32)
		assert.NotEqual(t, old, b)

		info, err := os.Stat(sk)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestBase64Commands(t *testing.T) {
	dir := t.TempDir()
	msg := writeMessage(t, dir, "msg.bin", "hello\xfb\xff")

	tests := []struct {
		format  string
		encoded string
	}{
		{format: "standard", encoded: "aGVsbG/7/w=="},
		{format: "urlsafe", encoded: "aGVsbG_7_w"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "base64", "encode", "-i", msg, "--format", tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, out)

			encoded := writeMessage(t, dir, tt.format+".b64", tt.encoded+"\n")
			out, err = run(t, "base64", "decode", "-i", encoded, "--format", tt.format)
			require.NoError(t, err)
			assert.Equal(t, "hello\xfb\xff", out)
		})
	}

	t.Run("decode from stdin", func(t *testing.T) {
		orig := source.StdinReader
		defer func() { source.StdinReader = orig }()

		source.StdinReader = strings.NewReader("aGVsbG8\n")
		out, err := run(t, "base64", "decode", "--format", "urlsafe")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("wrong alphabet", func(t *testing.T) {
		bad := writeMessage(t, dir, "bad.b64", "aGVsbG/7/w==")
		_, err := run(t, "base64", "decode", "-i", bad, "--format", "urlsafe")
		assert.ErrorIs(t, err, codec.ErrDecode)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "base64", "encode", "-i", msg, "--format", "base32")
		assert.ErrorIs(t, err, codec.ErrUnknownFormat)
	})
}

func TestCSVCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeMessage(t, dir, "players.csv", "Name;Age\nAda;36\n")

	out, err := run(t, "csv", "-i", in, "-d", ";", "-o", "-")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Name":"Ada","Age":"36"}]`, out)

	target := filepath.Join(dir, "players.yaml")
	out, err = run(t, "csv", "-i", in, "-d", ";", "-o", target, "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, target, out)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Name: Ada")

	t.Run("multi-character delimiter", func(t *testing.T) {
		_, err := run(t, "csv", "-i", in, "-d", ";;", "-o", "-")
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "csv", "-i", in, "-o", "-", "--format", "xml")
		assert.ErrorIs(t, err, csvconv.ErrUnknownFormat)
	})
}
