package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cmmoran/dtogen/internal/config"
	"github.com/cmmoran/dtogen/internal/logger"
	"github.com/cmmoran/dtogen/internal/store"
)

// version is set at build time.
var version string

// app is the state shared by the commands of one root.
type app struct {
	v           *viper.Viper
	fs          afero.Fs
	configFiles []string
	level       string

	cfg *config.Config
	log *zap.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCommand(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree. Config files and generated output
// go through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{v: viper.New(), fs: fs}

	rootCmd := &cobra.Command{
		Use:           "dtogen",
		Short:         "Design DTOs and generate C#, Blazor and Go code from them",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.initConfig(c)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.level, "level", "l", "", "log level (trace, debug, info, warn, error); overrides log.level")
	rootCmd.PersistentFlags().StringSliceVar(&a.configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")

	rootCmd.AddCommand(
		newModuleCommand(a),
		newDtoCommand(a),
		newIntrospectCommand(a),
		newGenerateCommand(a),
		newSnapshotCommand(a),
	)
	return rootCmd
}

// initConfig reads in config file(s) and ENV variables if set.
func (a *app) initConfig(c *cobra.Command) error {
	v := a.v
	v.SetFs(a.fs)
	config.SetDefaults(v)

	if len(a.configFiles) > 0 {
		v.SetConfigFile(a.configFiles[0])
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("dtogen")
	}

	v.SetEnvPrefix("DTOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(a.configFiles) > 0 || !errors.As(readErr, &notFound) {
			return errors.Wrapf(readErr, "read config %s", v.ConfigFileUsed())
		}
	}
	if len(a.configFiles) > 1 {
		for _, file := range a.configFiles[1:] {
			configBytes, err := afero.ReadFile(a.fs, file)
			if err != nil {
				return errors.Wrapf(err, "read config %s", file)
			}
			if err = v.MergeConfig(bytes.NewReader(configBytes)); err != nil {
				return errors.Wrapf(err, "merge config %s", file)
			}
		}
	}
	if len(version) > 0 {
		v.Set("version", version)
	}
	if c.Flags().Changed("level") {
		v.Set("log.level", a.level)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, l

	if readErr == nil {
		l.Debug("using config file(s)", zap.String("config", v.ConfigFileUsed()), zap.Strings("merged", a.configFiles))
	} else {
		l.Debug("no config file found, using defaults")
	}
	return nil
}

// withStore opens the configured database for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := store.Open(ctx, a.cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err = store.InitSchema(ctx, db); err != nil {
		return err
	}
	return fn(db)
}

// module resolves a module by name.
func (a *app) module(ctx context.Context, db *sql.DB, name string) (*store.Module, error) {
	m, err := store.NewModuleRepository(db).GetByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.Newf("module %q does not exist; create it with 'dtogen module add'", name)
	}
	return m, err
}
