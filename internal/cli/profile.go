package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/daemon"
	"github.com/daybreak-app/daybreak/internal/domain"
)

func init() {
	profileSetCmd.Flags().StringVar(&profileSobrietyDate, "sobriety-date", "", "Sobriety date YYYY-MM-DD (required)")
	profileSetCmd.Flags().StringVar(&profileTimezone, "timezone", "", "IANA timezone, e.g. America/New_York")
	profileSetCmd.Flags().Float64Var(&profileDailyCost, "daily-cost", 0, "Daily cost before recovery (default 20)")
	_ = profileSetCmd.MarkFlagRequired("sobriety-date")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

var (
	profileSobrietyDate string
	profileTimezone     string
	profileDailyCost    float64
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
}

var profileSetCmd = &cobra.Command{
	Use:   "set USER",
	Short: "Create or update a user profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSet,
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	if _, ok := progress.ParseDayKey(profileSobrietyDate); !ok {
		return domain.ErrInvalidSobrietyDate
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := domain.UserProfile{
		UserID:       args[0],
		SobrietyDate: profileSobrietyDate,
		Timezone:     profileTimezone,
		DailyCost:    profileDailyCost,
	}
	if err := d.DB.UpsertProfile(cmd.Context(), p); err != nil {
		return err
	}

	fmt.Printf("Profile saved for %s (sober since %s)\n", p.UserID, p.SobrietyDate)
	return nil
}

var profileShowCmd = &cobra.Command{
	Use:   "show USER",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.DB.FetchUserProfile(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("no profile for %s, run 'daybreak profile set %s --sobriety-date YYYY-MM-DD'", args[0], args[0])
	}
	if err != nil {
		return err
	}

	tz := p.Timezone
	if tz == "" {
		tz = domain.DefaultTimezone + " (default)"
	}
	cost := p.DailyCost
	if cost == 0 {
		cost = domain.DefaultDailyCost
	}

	fmt.Printf("User:          %s\n", p.UserID)
	fmt.Printf("Sobriety date: %s\n", p.SobrietyDate)
	fmt.Printf("Timezone:      %s\n", tz)
	fmt.Printf("Daily cost:    $%.2f\n", cost)
	return nil
}
