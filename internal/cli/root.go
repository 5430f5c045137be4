// Package cli holds the seekterm commands. The root command runs the
// interactive console; subcommands cover one-shot use.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seekterm/internal/config"
	"seekterm/internal/controller"
	"seekterm/internal/logger"
	"seekterm/internal/notify"
	"seekterm/internal/search"
)

// ErrSearchFailed is returned by commands whose search ended in Failed
var ErrSearchFailed = errors.New("search failed")

// app carries state shared by the commands of one invocation
type app struct {
	version    string
	configPath string
	noAlt      bool

	// overridable in tests
	stdout    io.Writer
	stderr    io.Writer
	clipboard notify.Clipboard
	ctrlOpts  []controller.Option
}

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, stdout: os.Stdout, stderr: os.Stderr}
	return a.rootCommand()
}

// Execute runs the command tree and returns the process exit code
func Execute(version string) int {
	if err := NewRootCommand(version).Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "seekterm [query...]",
		Short: "Terminal search console",
		Long: `seekterm queries a remote search endpoint and renders ranked results
with size, resolution, peers and score. Copy a result's link with c.

Without a subcommand it starts the interactive console. Any arguments
are joined into the first query.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         a.runTUI,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	pf.String("endpoint", "", "search endpoint base URL")
	pf.Duration("timeout", 0, "request timeout")
	pf.String("user-agent", "", "User-Agent header sent with requests")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "log destination: a file path, stderr or discard")
	root.Flags().BoolVar(&a.noAlt, "no-alt-screen", false, "render inline instead of on the alternate screen")

	root.AddCommand(
		a.searchCommand(),
		a.healthCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return root
}

// loadConfig reads the config file and overlays environment and flags
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	svc := config.NewConfigService(config.WithPath(a.configPath), config.WithFlags(cmd.Flags()))
	if a.configPath != "" {
		return svc.LoadFromPath(a.configPath)
	}
	return svc.Load()
}

func (a *app) newLogger(cfg *config.Config) *zap.Logger {
	return logger.NewWithConfig(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.File,
	})
}

func (a *app) newClient(cfg *config.Config) (*search.Client, error) {
	return search.NewClient(search.Options{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.RequestTimeout.Std(),
		UserAgent: cfg.UserAgent,
	})
}

func (a *app) newClipboard(log *zap.Logger) notify.Clipboard {
	if a.clipboard != nil {
		return a.clipboard
	}
	return notify.System{Log: log}
}

func notificationTiming(cfg *config.Config) notify.Timing {
	return notify.Timing{
		Entrance: cfg.Notification.EntranceDelay.Std(),
		Display:  cfg.Notification.DisplayDuration.Std(),
		Exit:     cfg.Notification.ExitDuration.Std(),
	}
}

func joinQuery(args []string) string {
	return strings.Join(args, " ")
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}
