package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/daemon"
)

func init() {
	rootCmd.AddCommand(milestonesCmd)
}

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "List the milestone catalog",
	Long: `List the milestone catalog.

A file named "milestones" in the Daybreak data directory overrides the
built-in catalog. One MILESTONE directive per line:

  MILESTONE 30 "One Month" 🌔`,
	RunE: runMilestones,
}

func runMilestones(cmd *cobra.Command, args []string) error {
	catalog, err := progress.LoadCatalogFile(filepath.Join(daemon.Home(), "milestones"))
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: %v (using built-in catalog)\n", err)
		}
		catalog = progress.DefaultMilestones()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAYS\tMILESTONE")
	for _, m := range catalog {
		fmt.Fprintf(w, "%d\t%s %s\n", m.ThresholdDays, m.Icon, m.Label)
	}
	return w.Flush()
}
