package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/phpast/php/codebase"
	"github.com/dhamidi/phpast/project"
)

var checkLog = commonlog.GetLogger("phpast.check")

func newCheckCmd() *cobra.Command {
	var workers int
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report PHP files that do not parse",
		Long: `Parse PHP files and report every syntax error as file:line:column.

Without arguments, checks the files of the project: phpast.toml in the
current directory or above decides which ones. With --watch, keeps
polling the project and reports files as they change.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load()
			if err != nil {
				return err
			}
			if workers > 0 {
				proj.Config.Workers = workers
			}
			cb := codebase.New(proj)
			out := cmd.OutOrStdout()

			if watch {
				if len(args) > 0 {
					return fmt.Errorf("--watch checks the whole project and takes no files")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchProject(ctx, cb, out)
			}

			if len(args) == 0 {
				if err := cb.ScanAll(); err != nil {
					return err
				}
			}
			for _, path := range args {
				if err := cb.ScanFile(path); err != nil {
					return err
				}
			}

			failed := cb.Failures()
			for _, f := range failed {
				fmt.Fprintln(out, f.ParseErr)
			}
			checkLog.Infof("%d files checked, %d failed", len(cb.Files()), len(failed))
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d files failed to parse", len(failed), len(cb.Files()))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "parallel parses (default from phpast.toml, or the number of CPUs)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep checking files as they change")

	return cmd
}

func watchProject(ctx context.Context, cb *codebase.Codebase, out io.Writer) error {
	w := codebase.NewFileWatcher(cb)
	w.OnChange = func(path string, fi *codebase.FileInfo) {
		switch {
		case fi == nil:
			checkLog.Infof("removed %s", path)
		case fi.ParseErr != nil:
			fmt.Fprintln(out, fi.ParseErr)
		default:
			checkLog.Debugf("ok %s", path)
		}
	}
	w.Start()
	defer w.Stop()

	checkLog.Noticef("watching %s", cb.RootDir())
	<-ctx.Done()
	return nil
}
