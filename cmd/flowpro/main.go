package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/cmd/flowpro/admin"
	"github.com/flowpro/flowpro/cmd/flowpro/serve"
	"github.com/flowpro/flowpro/cmd/flowpro/user"
	"github.com/flowpro/flowpro/pkg/config"
	logr "github.com/flowpro/flowpro/pkg/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "flowpro",
		Short:        "Team, project and task tracking server",
		Long:         "FlowPro serves a JSON API for teams, members, projects and tasks.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		admin.Command,
		user.Command,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	// A .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("couldn't load .env file", "err", err)
	}

	ctx := context.Background()
	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			log.Fatal("couldn't parse config file", "err", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		log.Fatal("couldn't parse environment variables", "err", err)
	}

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Fatal("couldn't create logger", "err", err)
	}
	if f != nil {
		defer f.Close() //nolint:errcheck
	}

	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if f != nil {
			f.Close() //nolint:errcheck,gosec
		}
		os.Exit(1)
	}
}
