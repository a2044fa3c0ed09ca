package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/diffview"
	"github.com/shipit-cli/shipit/internal/git"
	"github.com/shipit-cli/shipit/internal/output"
)

var filesCmd = &cobra.Command{
	Use:   "files [base [head]]",
	Short: "List changed files with add/delete counts",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var base, head string
		if len(args) > 0 {
			base = args[0]
		}
		if len(args) > 1 {
			head = args[1]
		}
		return filesRun(base, head)
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func filesRun(base, head string) error {
	gc := git.NewClient()

	cs, err := gatherChangeSet(gc, ".", base, head)
	if err != nil {
		return err
	}
	if cs.isEmpty() {
		ui.Info("No changes between %s and %s.", cs.Base, cs.Head)
		return nil
	}

	set, err := diffview.Parse(cs.Diff)
	if err != nil {
		return err
	}

	table := ui.Table([]string{"File", "Added", "Deleted", ""})
	for _, f := range set.Files {
		note := ""
		switch {
		case f.IsBinary:
			note = "binary"
		case f.IsNew:
			note = "new"
		case f.IsDeleted:
			note = "deleted"
		case f.IsRenamed:
			note = "renamed"
		}
		_ = table.Append([]string{
			output.Cyan(f.Name()),
			fmt.Sprintf("%d", f.Added),
			fmt.Sprintf("%d", f.Deleted),
			note,
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	files, added, deleted := set.Stats()
	fmt.Fprintf(ui.Out, "\n%d files, %s, %s\n",
		files,
		output.Green(fmt.Sprintf("+%d", added)),
		output.Red(fmt.Sprintf("-%d", deleted)),
	)
	return nil
}
