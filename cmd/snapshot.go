package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yonasBSD/gitoxide/ripsrc"
	"github.com/yonasBSD/gitoxide/ripsrc/cmd/cmdutils"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <repodir> <path> <checkpointdir>",
	Short: "Save history of a file into a checkpoint that can be blamed without the repo",
	Args:  cobra.ExactArgs(3),
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
		rev, _ := cmd.Flags().GetString("rev")
		repoDir := args[0]
		return cmdutils.RunOnRepo(ctx, repoDir, func() error {
			s := ripsrc.New(ripsrc.Opts{RepoDir: repoDir, Rev: rev, Config: &cfg, Logger: newLogger(cfg)})
			n, err := s.Snapshot(ctx, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(color.Error, "saved %v commits to %v\n", color.GreenString("%v", n), args[2])
			return nil
		})
	},
}

func registerSnapshot() {
	cmd := snapshotCmd
	cmd.Flags().String("rev", "", "revision to start from, defaults to HEAD")
	rootCmd.AddCommand(cmd)
}
