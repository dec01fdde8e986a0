package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avikko/grocer-admin/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <identifier>",
	Short: "Log in with email or phone and password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		result, err := current.client.Login(cmd.Context(), args[0], password)
		if err != nil {
			return surfaceErr(err)
		}

		if err := saveSession(result.Token, result.UserID.String(), result.Email); err != nil {
			return err
		}
		printf("Logged in as %s\n", args[0])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store.Delete(session.DefaultProfileKey); err != nil {
			return err
		}
		printf("Logged out\n")
		return nil
	},
}

var otpCmd = &cobra.Command{
	Use:   "otp",
	Short: "One-time code login",
}

var otpRequestCmd = &cobra.Command{
	Use:   "request <email>",
	Short: "Send a one-time code to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.client.RequestOTP(cmd.Context(), args[0]); err != nil {
			return surfaceErr(err)
		}
		printf("Code sent to %s\n", args[0])
		return nil
	},
}

var otpVerifyCmd = &cobra.Command{
	Use:   "verify <email> <code>",
	Short: "Verify a one-time code and start a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := current.client.VerifyOTP(cmd.Context(), args[0], args[1])
		if err != nil {
			return surfaceErr(err)
		}

		if err := saveSession(result.Token, result.UserID.String(), args[0]); err != nil {
			return err
		}
		printf("Logged in as %s\n", args[0])
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Start the password reset flow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.client.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return surfaceErr(err)
		}
		printf("Password reset instructions sent to %s\n", args[0])
		return nil
	},
}

func saveSession(token, userID, email string) error {
	return current.store.Save(&session.Profile{
		Key:    session.DefaultProfileKey,
		Token:  token,
		UserID: userID,
		Email:  email,
	})
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func init() {
	otpCmd.AddCommand(otpRequestCmd, otpVerifyCmd)
}
