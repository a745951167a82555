package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshare/internal/clip"
	"go.klb.dev/clipshare/internal/crypto"
	"go.klb.dev/clipshare/internal/message"
	"go.klb.dev/clipshare/internal/screenshot"
	"go.klb.dev/clipshare/internal/wire"
)

// newSource is replaced in tests.
var newSource = func(v *viper.Viper) clip.Source {
	var shot screenshot.Producer = screenshot.Display{}
	if v.GetBool("no-screenshot") {
		shot = nil
	}
	return clip.New(shot)
}

func newTextCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Print the clipboard text (like pbpaste)",
		Long: `Writes the clipboard text to stdout. If the clipboard holds no text,
nothing is printed (exit 0).`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd.Context(), v, cmd.OutOrStdout(), message.KindText)
		},
	}

	addReadFlags(cmd)
	return cmd
}

func newImageCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Write the clipboard image as PNG",
		Long: `Writes the clipboard image as PNG. When the clipboard holds no image a
screenshot of all displays is taken instead (disable with --no-screenshot).

  clipshare image -o shot.png`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd.Context(), v, cmd.OutOrStdout(), message.KindImage)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "write the image to this file instead of stdout")
	f.Bool("no-screenshot", false, "fail instead of capturing the screen when the clipboard has no image")
	addReadFlags(cmd)
	return cmd
}

func newFilesCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List files cut or copied in a file manager",
		Long: `Prints one path per line for the files on the clipboard. Selected folders
are skipped unless --dirs is given, in which case they are expanded into the
files they contain (up to 256 levels deep).

--relative prints names relative to the folder holding the first selected
entry, which is how they would be recreated on a peer. --copy-to DIR does
that recreation locally, skipping files that already exist in DIR.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRead(cmd.Context(), v, cmd.OutOrStdout(), message.KindFiles)
		},
	}

	f := cmd.Flags()
	f.Bool("dirs", false, "expand selected directories")
	f.Bool("relative", false, "print names relative to the selection root")
	f.String("copy-to", "", "copy the files into this directory under their relative names")
	addReadFlags(cmd)
	return cmd
}

func addReadFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "emit a newline-delimited JSON payload")
	cmd.Flags().String("token", "", "seal --json output with a key derived from this shared token")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
}

func runRead(ctx context.Context, v *viper.Viper, out io.Writer, kind message.Kind) error {
	setupLogging(v)
	if ctx == nil {
		ctx = context.Background()
	}

	src := newSource(v)
	slog.Debug("clipboard backend", "name", src.Name())

	p, err := clip.Fetch(ctx, src, kind, v.GetBool("dirs"))
	if err != nil {
		if errors.Is(err, clip.ErrNotFound) {
			slog.Info("nothing on clipboard", "kind", kind, "err", err)
			return nil
		}
		recordError(err)
		return err
	}
	message.LogPayload("clipboard read", p)

	if dest := v.GetString("copy-to"); dest != "" && p.Kind == message.KindFiles {
		saved, err := saveFiles(afero.NewOsFs(), afero.NewBasePathFs(afero.NewOsFs(), dest), p)
		if err != nil {
			recordError(err)
			return err
		}
		return writeRaw(out, message.NewFiles(saved, ""), false)
	}

	if path := v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if v.GetBool("json") {
		key, err := crypto.DeriveKey(v.GetString("token"))
		if err != nil {
			return err
		}
		return wire.NewWriter(out, key).WriteMsg(p)
	}
	return writeRaw(out, p, v.GetBool("relative"))
}

// writeRaw prints the payload as a user would want it on a terminal.
func writeRaw(w io.Writer, p *message.Payload, relative bool) error {
	if p.Kind != message.KindFiles {
		_, err := w.Write(p.Data)
		return err
	}
	names := p.Files
	if relative {
		names = p.RelativeNames()
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
