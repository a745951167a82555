package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshare/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPSHARE_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPSHARE_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipshare")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipshare/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/clipshare", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPSHARE")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn, debug with --no-background)")
	cmd.Flags().String("error-log", "", "append unexpected errors to this file (e.g. "+logging.DefaultErrorLogFile+")")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog and the
// error log.
func setupLogging(v *viper.Viper) {
	interactive := v.GetBool("no-background")
	resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"))
	if path := v.GetString("error-log"); path != "" {
		setErrorLog(logging.NewErrorLog(path))
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = slog.LevelDebug
		} else {
			level = slog.LevelWarn
		}
	}
	logging.Setup(format, level)
}

var (
	errLogMu sync.Mutex
	errLog   *logging.ErrorLog
)

func setErrorLog(l *logging.ErrorLog) {
	errLogMu.Lock()
	errLog = l
	errLogMu.Unlock()
}

// errorLog returns the configured error log, or one writing to the default
// file when none was configured.
func errorLog() *logging.ErrorLog {
	errLogMu.Lock()
	defer errLogMu.Unlock()
	if errLog == nil {
		errLog = logging.NewErrorLog("")
	}
	return errLog
}

// recordError appends err to the error log if one was configured with
// --error-log.
func recordError(err error) {
	errLogMu.Lock()
	l := errLog
	errLogMu.Unlock()
	if l != nil {
		l.Error(err.Error())
	}
}
