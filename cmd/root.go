package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yonasBSD/gitoxide/ripsrc/cmd/cmdutils"
	"github.com/yonasBSD/gitoxide/ripsrc/config"
	"github.com/yonasBSD/gitoxide/ripsrc/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "gitoxide",
	Short:         "Incremental line blame for git repositories",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// common sets up profiling, memory logs and interrupt handling shared by all commands.
// Returned ctx is cancelled on interrupt, call done when finished.
func common(cmd *cobra.Command) (ctx context.Context, done func(), _ error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	var ends []func()
	done = func() {
		for i := len(ends) - 1; i >= 0; i-- {
			ends[i]()
		}
		stop()
	}
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		onEnd, err := cmdutils.EnableProfiling(p)
		if err != nil {
			stop()
			return nil, nil, err
		}
		ends = append(ends, onEnd)
	}
	if dumpmem, _ := cmd.Flags().GetBool("dump-mem"); dumpmem {
		memCtx, cancel := context.WithCancel(ctx)
		cmdutils.StartMemLogs(memCtx, 5*time.Second)
		ends = append(ends, cancel)
	}
	return ctx, done, nil
}

// loadConfig reads --config file or defaults and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		var err error
		cfg, err = config.Load(p)
		if err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("since") {
		cfg.Blame.Since, _ = flags.GetString("since")
	}
	if flags.Changed("lines") {
		cfg.Blame.Ranges, _ = flags.GetStringArray("lines")
	}
	if flags.Changed("diff") {
		cfg.Blame.Diff, _ = flags.GetString("diff")
	}
	if flags.Changed("diff-algorithm") {
		cfg.Blame.DiffAlgorithm, _ = flags.GetString("diff-algorithm")
	}
	if flags.Changed("parallelism") {
		cfg.Blame.Parallelism, _ = flags.GetInt("parallelism")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("cache") {
		cfg.Cache.Path, _ = flags.GetString("cache")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Debug = true
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) logger.Logger {
	if cfg.Log.Debug {
		return logger.NewDefaultLogger(color.Error)
	}
	return logger.NewInfoLogger(color.Error)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("dump-mem", false, "print memory stats every 5 sec")
	pf.String("profile", "", "one of mem, mutex, cpu, block, trace or empty to disable")
	pf.String("config", "", "TOML config file")
	pf.Bool("debug", false, "enable debug logs")

	registerBlame()
	registerSnapshot()
	registerValidate()
	registerConfig()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
