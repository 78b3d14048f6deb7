package fittrack

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

var (
	regUsername string
	regEmail    string
	regPassword string
	regAge      int
	regGender   string
	regWeight   float64
	regHeight   float64
	regActivity string
	regGoal     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account with body metrics and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.requireRemote("register"); err != nil {
				return err
			}
			sess, err := e.sessions().Register(cmd.Context(), model.Registration{
				Username:      strings.TrimSpace(regUsername),
				Email:         strings.TrimSpace(regEmail),
				Password:      regPassword,
				Age:           regAge,
				Gender:        strings.TrimSpace(regGender),
				WeightKg:      regWeight,
				HeightCm:      regHeight,
				ActivityLevel: model.ActivityLevel(strings.ToLower(strings.TrimSpace(regActivity))),
				FitnessGoal:   model.FitnessGoal(strings.ToLower(strings.TrimSpace(regGoal))),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Registered and logged in as %s\n", sess.User.Username)
			printTargets(e.out, sess.Target)
			return nil
		})
	},
}

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.requireRemote("login"); err != nil {
				return err
			}
			sess, err := e.sessions().Login(cmd.Context(), loginEmail, loginPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Logged in as %s\n", sess.User.Username)
			printTargets(e.out, sess.Target)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.sessions().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Logged out")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)

	registerCmd.Flags().StringVar(&regUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email (used to log in)")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password")
	registerCmd.Flags().IntVar(&regAge, "age", 0, "Age in years")
	registerCmd.Flags().StringVar(&regGender, "gender", "", "Gender")
	registerCmd.Flags().Float64Var(&regWeight, "weight", 0, "Weight in kg")
	registerCmd.Flags().Float64Var(&regHeight, "height", 0, "Height in cm")
	registerCmd.Flags().StringVar(&regActivity, "activity", string(model.ActivityModerate), "Activity level: sedentary, light, moderate, very_active, extra_active")
	registerCmd.Flags().StringVar(&regGoal, "goal", string(model.GoalMaintain), "Fitness goal: lose_weight, maintain, gain_muscle")
	for _, name := range []string{"username", "email", "password", "age", "gender", "weight", "height"} {
		_ = registerCmd.MarkFlagRequired(name)
	}

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
