package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile and daily macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.requireRemote("me"); err != nil {
				return err
			}
			sess, err := e.resume(cmd.Context())
			if err != nil {
				return err
			}
			u := sess.User
			fmt.Fprintf(e.out, "Username: %s\n", u.Username)
			fmt.Fprintf(e.out, "Email: %s\n", u.Email)
			fmt.Fprintf(e.out, "Age: %d | Gender: %s\n", u.Age, u.Gender)
			fmt.Fprintf(e.out, "Weight: %.1f kg | Height: %.1f cm\n", u.WeightKg, u.HeightCm)
			fmt.Fprintf(e.out, "Activity: %s | Goal: %s\n", u.ActivityLevel, u.FitnessGoal)
			if !sess.ExpiresAt.IsZero() {
				fmt.Fprintf(e.out, "Session expires: %s\n", sess.ExpiresAt.In(e.loc).Format("2006-01-02 15:04"))
			}
			printTargets(e.out, sess.Target)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
