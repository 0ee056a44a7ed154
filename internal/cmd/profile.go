package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikitArias/online-store-loyalty/internal/format"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

var (
	profileName    string
	profilePhone   string
	profileAddress string

	oldPassword string
	newPassword string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE:  runProfile,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update your name, phone or address",
	RunE:  runProfileEdit,
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE:  runProfilePassword,
}

var profileReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List the reviews you have written",
	RunE:  runProfileReviews,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profilePasswordCmd)
	profileCmd.AddCommand(profileReviewsCmd)

	profileEditCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileEditCmd.Flags().StringVar(&profilePhone, "phone", "", "Phone number")
	profileEditCmd.Flags().StringVar(&profileAddress, "address", "", "Delivery address")

	profilePasswordCmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	profilePasswordCmd.Flags().StringVar(&newPassword, "new", "", "New password (min 6 chars, letters and digits)")
	_ = profilePasswordCmd.MarkFlagRequired("old")
	_ = profilePasswordCmd.MarkFlagRequired("new")
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	identity, ok := a.session.Current()
	if !ok {
		return fmt.Errorf("please log in first: %w", models.ErrNotLoggedIn)
	}

	user, err := a.api.Profile(ctx, identity.Token, identity.ID)
	if err != nil {
		return reportErr(err)
	}

	fmt.Printf("👤 %s\n", user.Name)
	fmt.Printf("   Email:   %s\n", user.Email)
	if user.Phone != "" {
		fmt.Printf("   Phone:   %s\n", format.Phone(user.Phone))
	}
	if user.Address != "" {
		fmt.Printf("   Address: %s\n", user.Address)
	}
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	identity, ok := a.session.Current()
	if !ok {
		return fmt.Errorf("please log in first: %w", models.ErrNotLoggedIn)
	}

	// Start from the server copy so unset flags keep their current value.
	user, err := a.api.Profile(ctx, identity.Token, identity.ID)
	if err != nil {
		return reportErr(err)
	}

	req := models.UpdateProfileRequest{
		Name:    user.Name,
		Phone:   format.PhoneDigits(format.Phone(user.Phone)),
		Address: user.Address,
	}
	if profileName != "" {
		req.Name = profileName
	}
	if profileAddress != "" {
		req.Address = profileAddress
	}
	if profilePhone != "" {
		masked := format.Phone(profilePhone)
		if !format.PhoneValid(masked) {
			return fmt.Errorf("phone number is incomplete: got %q", masked)
		}
		req.Phone = format.PhoneDigits(masked)
	}
	if err := models.NewValidator().Struct(req); err != nil {
		return fmt.Errorf("invalid profile data: %w", err)
	}

	if err := a.api.UpdateProfile(ctx, identity.Token, req); err != nil {
		return reportErr(err)
	}
	fmt.Println("✅ Profile updated")
	return nil
}

func runProfilePassword(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := models.NewValidator().Struct(req); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	if err := a.api.ChangePassword(ctx, token, req); err != nil {
		return reportErr(err)
	}
	fmt.Println("🔒 Password changed")
	return nil
}

func runProfileReviews(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	reviews, err := a.api.MyReviews(ctx, token)
	if err != nil {
		return reportErr(err)
	}
	if len(reviews) == 0 {
		fmt.Println("You have not reviewed anything yet")
		return nil
	}
	for _, r := range reviews {
		fmt.Printf("product %d  %d★  %s\n", r.ID.ProductID, r.Rating, r.Comment)
	}
	return nil
}
