package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshare/internal/conf"
	"go.klb.dev/clipshare/internal/tlsconf"
)

// DefaultConfFile is the server config read when no path is given.
const DefaultConfFile = "clipshare.conf"

func newConfCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "config [file]",
		Aliases: []string{"conf"},
		Short:   "Show what a server config file loads",
		Long: `Parses a clipshare server config file (key=value lines) and prints the
resulting settings: ports, which key/certificate files were loaded, and the
allowed clients. When a key pair is present the TLS setup is checked too.

A missing file is not an error; every setting is then reported as unset.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfFile
			if len(args) == 1 {
				path = args[0]
			}
			setupLogging(v)
			return runConf(afero.NewOsFs(), path, v.GetBool("json"), cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

type confSummary struct {
	Path           string   `json:"path"`
	AppPort        uint16   `json:"app_port"`
	AppPortSecure  uint16   `json:"app_port_secure"`
	WebPort        uint16   `json:"web_port"`
	ServerKey      int      `json:"server_key_bytes"`
	ServerCert     int      `json:"server_cert_bytes"`
	CACert         int      `json:"ca_cert_bytes"`
	AllowedClients []string `json:"allowed_clients"`
	TLS            string   `json:"tls"`
}

func summarize(path string, cfg conf.Config) confSummary {
	s := confSummary{
		Path:           path,
		AppPort:        cfg.AppPort,
		AppPortSecure:  cfg.AppPortSecure,
		WebPort:        cfg.WebPort,
		ServerKey:      len(cfg.PrivKey),
		ServerCert:     len(cfg.ServerCert),
		CACert:         len(cfg.CACert),
		AllowedClients: cfg.AllowedClients,
	}
	switch tc, err := tlsconf.ServerConfig(cfg); {
	case err != nil:
		s.TLS = "disabled: " + err.Error()
	case tc.ClientCAs != nil:
		s.TLS = "ok (client certificates required)"
	default:
		s.TLS = "ok"
	}
	return s
}

func runConf(fsys afero.Fs, path string, jsonOut bool, out io.Writer) error {
	s := summarize(path, conf.Load(fsys, path))

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "config\t%s\n", s.Path)
	fmt.Fprintf(tw, "app_port\t%s\n", port(s.AppPort))
	fmt.Fprintf(tw, "app_port_secure\t%s\n", port(s.AppPortSecure))
	fmt.Fprintf(tw, "web_port\t%s\n", port(s.WebPort))
	fmt.Fprintf(tw, "server_key\t%s\n", size(s.ServerKey))
	fmt.Fprintf(tw, "server_cert\t%s\n", size(s.ServerCert))
	fmt.Fprintf(tw, "ca_cert\t%s\n", size(s.CACert))
	clients := "unset"
	if s.AllowedClients != nil {
		clients = fmt.Sprintf("%d [%s]", len(s.AllowedClients), strings.Join(s.AllowedClients, ", "))
	}
	fmt.Fprintf(tw, "allowed_clients\t%s\n", clients)
	fmt.Fprintf(tw, "tls\t%s\n", s.TLS)
	return tw.Flush()
}

func port(p uint16) string {
	if p == 0 {
		return "unset"
	}
	return fmt.Sprint(p)
}

func size(n int) string {
	if n == 0 {
		return "unset"
	}
	return fmt.Sprintf("%d bytes", n)
}
