package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybreak-app/daybreak/internal/daemon"
	"github.com/daybreak-app/daybreak/internal/domain"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary USER",
	Short: "Show derived recovery progress for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := d.Engine.Summary(cmd.Context(), args[0], time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Today:         %s (%s)\n", s.Today, s.Timezone)
	fmt.Printf("Sobriety days: %d\n", s.SobrietyDays)
	fmt.Printf("Money saved:   $%.2f\n", s.Savings.TotalSaved)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK-IN\tCURRENT STREAK\tLONGEST")
	for _, kind := range domain.AllKinds() {
		st := s.Streaks[kind]
		fmt.Fprintf(w, "%s\t%d\t%d\n", kind, st.CurrentStreak, st.LongestStreak)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Compliance:    %d%% week / %d%% month\n",
		s.Compliance.CheckInWeek.Rate, s.Compliance.CheckInMonth.Rate)

	if s.Milestone.Achieved {
		fmt.Println("Milestones:    all achieved")
	} else if m := s.Milestone.NextThreshold; m != nil {
		fmt.Printf("Next milestone: %s %s in %d days (%d%%)\n",
			m.Icon, m.Label, s.Milestone.DaysUntil, s.Milestone.ProgressPercentage)
	}

	if s.Pattern != nil {
		fmt.Printf("\nHeads up (%s): %s\n", s.Pattern.MetricType, s.Pattern.Message)
	}

	return nil
}
