package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/hostelcare/internal/app/migrations"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/config"
	"github.com/yigit/hostelcare/internal/db"
	"github.com/yigit/hostelcare/internal/pkg/auth"
	"github.com/yigit/hostelcare/internal/pkg/helpers"
	"github.com/yigit/hostelcare/internal/pkg/logger"
	"github.com/yigit/hostelcare/internal/seed"
)

type schemaMigrator interface {
	Up() error
	Down(steps int) error
	Version() (uint, bool, error)
	Close() error
}

// app carries what the commands need from the outside world
type app struct {
	configPath  string
	loadConfig  func(path string) (*config.Config, error)
	openStore   func(cfg *config.Config, lgr zerolog.Logger) (repositories.Store, func(), error)
	newMigrator func(cfg *config.Config, lgr zerolog.Logger) (schemaMigrator, error)
}

func defaultApp() *app {
	return &app{
		loadConfig: func(path string) (*config.Config, error) {
			return config.LoadConfig(path)
		},
		openStore: func(cfg *config.Config, lgr zerolog.Logger) (repositories.Store, func(), error) {
			database, err := db.NewPostgresDB(cfg, lgr)
			if err != nil {
				return nil, nil, err
			}
			return repositories.NewPgStore(database), database.Close, nil
		},
		newMigrator: func(cfg *config.Config, lgr zerolog.Logger) (schemaMigrator, error) {
			m, err := migrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hostelctl",
		Short:         "HostelCare administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "configs/config.yaml", "path to the YAML config file")

	root.AddCommand(
		a.migrateCmd(),
		a.createAdminCmd(),
		a.setPasswordCmd(),
		a.seedCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := a.loadConfig(a.configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	logCfg := logger.ConfigFromStrings(cfg.Logging.Level, "text")
	logCfg.Output = cmd.ErrOrStderr()
	return cfg, logger.Configure(logCfg), nil
}

// withAuth opens the store and hands fn an AuthService over it
func (a *app) withAuth(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, store repositories.Store, svc *services.AuthService, lgr zerolog.Logger) error) error {
	cfg, lgr, err := a.setup(cmd)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(cfg, lgr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	svc := services.NewAuthService(store, jwtService, lgr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	return fn(ctx, cfg, store, svc, lgr)
}

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(fn func(m schemaMigrator, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, lgr, err := a.setup(cmd)
			if err != nil {
				return err
			}
			m, err := a.newMigrator(cfg, lgr)
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(m, cmd.OutOrStdout())
		}
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(m schemaMigrator, out io.Writer) error {
			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(m, out)
		}),
	}

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return run(func(m schemaMigrator, out io.Writer) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(m, out)
			})(cmd, args)
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  run(printVersion),
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(m schemaMigrator, out io.Writer) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(out, "schema version %d (dirty)\n", v)
		return nil
	}
	fmt.Fprintf(out, "schema version %d\n", v)
	return nil
}

func (a *app) createAdminCmd() *cobra.Command {
	var username, password, fullName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			return a.withAuth(cmd, func(ctx context.Context, _ *config.Config, _ repositories.Store, svc *services.AuthService, _ zerolog.Logger) error {
				admin, err := svc.CreateAdmin(ctx, username, password, fullName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %d)\n", admin.Username, admin.AdminID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (a *app) setPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password (student|admin) <id> <password>",
		Short: "Replace a student's or admin's password",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, password := args[0], args[1], args[2]
			if kind != "student" && kind != "admin" {
				return fmt.Errorf("account kind must be student or admin, got %q", kind)
			}

			return a.withAuth(cmd, func(ctx context.Context, _ *config.Config, _ repositories.Store, svc *services.AuthService, _ zerolog.Logger) error {
				var err error
				if kind == "student" {
					err = svc.SetStudentPassword(ctx, id, password)
				} else {
					err = svc.SetAdminPassword(ctx, id, password)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s %s\n", kind, id)
				return nil
			})
		},
	}
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the configured admin and, with --demo, sample hostels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withAuth(cmd, func(ctx context.Context, cfg *config.Config, store repositories.Store, svc *services.AuthService, lgr zerolog.Logger) error {
				admin := seed.AdminAccount{
					Username: cfg.Admin.Username,
					Password: cfg.Admin.Password,
					FullName: cfg.Admin.FullName,
				}
				if err := seed.CreateDefaultData(ctx, store, svc, admin, demo || cfg.Admin.SeedDemoData, lgr); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "also create demo hostels and rooms")
	return cmd
}
