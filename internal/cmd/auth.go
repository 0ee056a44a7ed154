package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikitArias/online-store-loyalty/internal/format"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string
	registerPhone    string
	registerAddress  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session for later commands",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (min 6 chars, letters and digits)")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number, e.g. +7 (912) 345-67-89")
	registerCmd.Flags().StringVar(&registerAddress, "address", "", "Delivery address")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("phone")
	_ = registerCmd.MarkFlagRequired("address")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	creds := models.Credentials{Email: loginEmail, Password: loginPassword}
	if err := models.NewValidator().Struct(creds); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}

	identity, err := a.api.Login(ctx, creds)
	if err != nil {
		return reportErr(err)
	}
	a.session.Login(ctx, identity)

	if identity.IsAdmin() {
		fmt.Println("🔑 Logged in as administrator")
		return nil
	}
	fmt.Printf("👋 Welcome back, %s!\n", identity.Name)
	if n := a.cart.DistinctCount(); n > 0 {
		fmt.Printf("🛒 Your cart has %d product(s) waiting\n", n)
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	// The mask fixes common input shapes (leading 8, separators) before
	// validation sees the digits.
	masked := format.Phone(registerPhone)
	if !format.PhoneValid(masked) {
		return fmt.Errorf("phone number is incomplete: got %q", masked)
	}

	req := models.RegisterRequest{
		Name:     registerName,
		Email:    registerEmail,
		Password: registerPassword,
		Phone:    format.PhoneDigits(masked),
		Address:  registerAddress,
	}
	if err := models.NewValidator().Struct(req); err != nil {
		return fmt.Errorf("invalid registration data: %w", err)
	}

	if err := a.api.Register(ctx, req); err != nil {
		return reportErr(err)
	}
	fmt.Println("✅ Account created! Log in with 'store login'")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if _, ok := a.session.Current(); !ok {
		fmt.Println("You are not logged in")
		return nil
	}
	a.session.Logout(ctx)
	fmt.Println("👋 Logged out")
	return nil
}
