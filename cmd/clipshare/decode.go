package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshare/internal/crypto"
	"go.klb.dev/clipshare/internal/message"
	"go.klb.dev/clipshare/internal/wire"
)

func newDecodeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a --json payload stream from stdin",
		Long: `Reads payloads written by text/image/files --json from stdin and prints
their contents the same way the plain commands would. Use the same --token
the stream was sealed with.

  clipshare files --dirs --json --token s3cret | ssh host clipshare decode --token s3cret`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(v)
			return runDecode(cmd.InOrStdin(), cmd.OutOrStdout(), v.GetString("token"), v.GetBool("relative"))
		},
	}

	f := cmd.Flags()
	f.String("token", "", "shared token the stream was sealed with")
	f.Bool("relative", false, "print file names relative to the selection root")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runDecode(in io.Reader, out io.Writer, token string, relative bool) error {
	key, err := crypto.DeriveKey(token)
	if err != nil {
		return err
	}
	r := wire.NewReader(in, key)
	for {
		p, err := r.ReadMsg()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		message.LogPayload("payload decoded", p)
		if err := writeRaw(out, p, relative); err != nil {
			return err
		}
	}
}
