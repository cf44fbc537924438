// Package cli wires config, logging, storage and the buddy service into
// the timezone-buddy command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/timezone-buddy/internal/buddies"
	"github.com/aanand-mishra/timezone-buddy/internal/config"
	"github.com/aanand-mishra/timezone-buddy/internal/logger"
	"github.com/aanand-mishra/timezone-buddy/internal/storage"
	"github.com/aanand-mishra/timezone-buddy/internal/storage/file"
	"github.com/aanand-mishra/timezone-buddy/internal/storage/sqlite"
)

// app is the state shared by every command of one invocation.
type app struct {
	fs  afero.Fs
	now func() time.Time

	configPath string
	verbose    bool

	cfg *config.Config
	kv  storage.KeyValue
	svc *buddies.Service
}

// errReported marks an error the command already showed to the user
// (as a failure toast), so Execute only sets the exit code.
type errReported struct{ err error }

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

// Execute runs the command tree against os.Args and returns the process
// exit code.
func Execute() int {
	a := &app{fs: afero.NewOsFs(), now: time.Now}
	cmd := newRootCmd(a)

	err := cmd.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		var rep errReported
		if !errors.As(err, &rep) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "timezone-buddy",
		Short:         "Keep track of what time it is for your friends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the YAML config file (or CONFIG_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newListCmd(a),
		newMenuBarCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newResetCmd(a),
		newZonesCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads config and installs the default logger. Only serve logs
// at its normal level; the others stay quiet so logs never interleave
// with rendered output.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	quiet := cmd.Name() != "serve" && !a.verbose
	slog.SetDefault(logger.New(cfg, quiet))

	slog.Debug("config loaded",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path),
	)
	return nil
}

// service opens the configured backend on first use.
func (a *app) service() (*buddies.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	var (
		kv  storage.KeyValue
		err error
	)
	switch a.cfg.Storage.Driver {
	case config.DriverFile:
		kv, err = file.New(a.fs, a.cfg.Storage.Path)
	default:
		kv, err = sqlite.New(a.cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a.kv = kv
	a.svc = buddies.NewService(buddies.NewStore(kv, a.cfg.Storage.Namespace))
	return a.svc, nil
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv, a.svc = nil, nil
	return err
}

// position converts a 1-based position argument to a list index.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number from 1", arg)
	}
	return n - 1, nil
}
