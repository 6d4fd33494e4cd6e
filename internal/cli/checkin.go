package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/daemon"
	"github.com/daybreak-app/daybreak/internal/domain"
)

func init() {
	checkinCmd.Flags().StringVar(&checkinUser, "user", "", "User ID (required)")
	checkinCmd.Flags().StringVar(&checkinDay, "day", "", "Calendar day YYYY-MM-DD (default: today in the user's timezone)")
	checkinCmd.Flags().IntVar(&checkinMood, "mood", -1, "Mood score 0-10")
	checkinCmd.Flags().IntVar(&checkinCraving, "craving", -1, "Craving score 0-10")
	checkinCmd.Flags().IntVar(&checkinAnxiety, "anxiety", -1, "Anxiety score 0-10")
	checkinCmd.Flags().IntVar(&checkinSleep, "sleep", -1, "Sleep quality score 0-10")
	checkinCmd.Flags().IntVar(&checkinOverall, "overall", -1, "Overall day score 0-10")
	_ = checkinCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(checkinCmd)
}

var (
	checkinUser    string
	checkinDay     string
	checkinMood    int
	checkinCraving int
	checkinAnxiety int
	checkinSleep   int
	checkinOverall int
)

var checkinCmd = &cobra.Command{
	Use:   "checkin KIND",
	Short: "Record a morning or evening check-in",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	kind := domain.CheckInKind(args[0])
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	now := time.Now()

	day := checkinDay
	if day == "" {
		tz := d.Config.Engine.DefaultTimezone
		if profile, err := d.DB.FetchUserProfile(ctx, checkinUser); err == nil && profile.Timezone != "" {
			tz = profile.Timezone
		}
		day = progress.CalendarDayKey(now, progress.LoadLocation(tz))
	}

	rec := domain.CheckInRecord{
		ID:          uuid.NewString(),
		UserID:      checkinUser,
		CalendarDay: day,
		Kind:        kind,
		Metrics: domain.CheckInMetrics{
			Mood:       flagScore(checkinMood),
			Craving:    flagScore(checkinCraving),
			Anxiety:    flagScore(checkinAnxiety),
			Sleep:      flagScore(checkinSleep),
			OverallDay: flagScore(checkinOverall),
		},
		CapturedAt: now,
	}

	if err := progress.ValidateCheckIn(rec); err != nil {
		return err
	}
	if err := d.DB.InsertCheckIn(ctx, rec); err != nil {
		return err
	}

	fmt.Printf("Recorded %s check-in for %s on %s\n", kind, checkinUser, day)
	return nil
}

// flagScore converts the -1 "not set" flag default to an absent metric.
func flagScore(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
