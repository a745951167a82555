package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy stdin to the clipboard as text (like pbcopy)",
		Long: `Reads stdin and places it on the system clipboard as text. Empty input
leaves the clipboard unchanged.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCopy(cmd.Context(), v, cmd.InOrStdin())
		},
	}

	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runCopy(ctx context.Context, v *viper.Viper, in io.Reader) error {
	setupLogging(v)
	if ctx == nil {
		ctx = context.Background()
	}
	if in == nil {
		in = os.Stdin
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	src := newSource(v)
	if err := src.SetText(ctx, data); err != nil {
		recordError(err)
		return err
	}
	slog.Debug("clipboard text set", "backend", src.Name(), "size_bytes", len(data))
	return nil
}
