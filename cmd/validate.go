package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yonasBSD/gitoxide/ripsrc"
	"github.com/yonasBSD/gitoxide/ripsrc/cmd/cmdutils"
)

var validateCmd = &cobra.Command{
	Use:   "validate <repodir> <paths...>",
	Short: "Compare blame results with git blame",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, done, err := common(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		defer done()
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmdutils.ExitWithErr(err)
		}
		rev, _ := cmd.Flags().GetString("rev")
		repoDir := args[0]
		var errs []error
		err = cmdutils.RunOnRepo(ctx, repoDir, func() error {
			s := ripsrc.New(ripsrc.Opts{RepoDir: repoDir, Rev: rev, Config: &cfg, Logger: newLogger(cfg)})
			for _, p := range args[1:] {
				fmt.Fprintln(color.Output, "Checking file:", p)
				res, err := s.Validate(ctx, p)
				if err != nil {
					fmt.Fprintln(color.Output, "Content of incremental blame")
					fmt.Fprintln(color.Output, res.Outcome)
					errs = append(errs, fmt.Errorf("%v: %w", p, err))
				}
			}
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
		if len(errs) != 0 {
			cmdutils.ExitWithErrs(errs)
		}
		fmt.Fprintln(color.Output, color.GreenString("SUCCESS on %v", repoDir))
	},
}

func registerValidate() {
	cmd := validateCmd
	cmd.Flags().String("rev", "", "revision to start from, defaults to HEAD")
	rootCmd.AddCommand(cmd)
}
