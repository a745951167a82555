// clipshare: read the system clipboard as canonical text, image and file
// list payloads.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	defer recoverFatal()

	root := &cobra.Command{
		Use:   "clipshare",
		Short: "Read the clipboard as shareable payloads",
		Long: `clipshare reads whatever the system clipboard holds (text, an image, or
files cut/copied in a file manager) and prints it in a form that can be sent
to another machine.

  clipshare text                 print clipboard text
  clipshare image -o shot.png    clipboard image, or a screenshot if there is none
  clipshare files --dirs         copied files, folders expanded
  clipshare copy < notes.txt     put stdin on the clipboard
  clipshare config my.conf       show what a server config file loads

Add --json to text/image/files to emit newline-delimited JSON payloads
(sealed with --token), and read them back with "clipshare decode".

Config file search order (first found wins):
  /etc/clipshare/clipshare.toml
  $HOME/.config/clipshare/clipshare.toml
  path supplied via --config

All flags can be set via CLIPSHARE_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newTextCmd(),
		newImageCmd(),
		newFilesCmd(),
		newCopyCmd(),
		newConfCmd(),
		newDecodeCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipshare %s\n", Version)
		},
	}
}

// recoverFatal turns a panic into a fatal error-log entry so a supervisor
// sees a clean exit status and a record of what went wrong.
func recoverFatal() {
	if r := recover(); r != nil {
		errorLog().Fatal(fmt.Sprintf("panic: %v", r))
	}
}
