package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yonasBSD/gitoxide/ripsrc"
	"github.com/yonasBSD/gitoxide/ripsrc/blameout"
	"github.com/yonasBSD/gitoxide/ripsrc/config"
)

var blameCmd = &cobra.Command{
	Use:   "blame <repodir> <path>",
	Short: "Show the commit that last changed each line of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, done, err := common(cmd)
		if err != nil {
			return err
		}
		defer done()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Output.Color {
			color.NoColor = true
		}
		rev, _ := cmd.Flags().GetString("rev")
		checkpoint, _ := cmd.Flags().GetString("checkpoint")
		log := newLogger(cfg)

		start := time.Now()
		s := ripsrc.New(ripsrc.Opts{
			RepoDir:       args[0],
			CheckpointDir: checkpoint,
			Rev:           rev,
			Config:        &cfg,
			Logger:        log,
		})
		res, err := s.Blame(ctx, args[1])
		if err != nil {
			return err
		}
		if res.Interrupted {
			fmt.Fprintln(color.Error, color.YellowString("interrupted, some lines were not attributed"))
		}
		log.Debug("blame finished", "d", time.Since(start), "cached", res.CacheHit,
			"commits", res.Stats.CommitsVisited, "diffs", res.Stats.DiffsComputed, "blobs", res.Stats.BlobsFetched)

		switch cfg.Output.Format {
		case config.FormatRecords:
			return blameout.WriteRecords(os.Stdout, res.Outcome)
		case config.FormatMsgp:
			return blameout.Encode(os.Stdout, res.Outcome)
		default:
			return blameout.Annotate(color.Output, res.Outcome, res.Content, res.Revisions, blameout.AnnotateOpts{Color: cfg.Output.Color})
		}
	},
}

func registerBlame() {
	cmd := blameCmd
	flags := cmd.Flags()
	flags.String("rev", "", "revision to start from, defaults to HEAD")
	flags.StringArrayP("lines", "L", nil, "blame only lines a,b or a,+n (1-based, repeatable)")
	flags.String("since", "", "do not walk past commits older than this date")
	flags.String("format", config.FormatAnnotate, "output format: annotate, records or msgp")
	flags.String("diff", config.DiffDifflib, "line diff implementation: difflib or git")
	flags.String("diff-algorithm", "", "algorithm for git diff, e.g. histogram")
	flags.Int("parallelism", 0, "max concurrent diffs per commit")
	flags.String("cache", "", "SQLite file to cache results in")
	flags.String("checkpoint", "", "read history from checkpoint dir written by snapshot instead of repodir")
	flags.Bool("no-color", false, "disable colors")
	rootCmd.AddCommand(cmd)
}
