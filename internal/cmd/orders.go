package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NikitArias/online-store-loyalty/internal/format"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

var (
	reviewRating  int
	reviewComment string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE:  runOrders,
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a placed order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersCancel,
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Delete an order from your history",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersDelete,
}

var reviewCmd = &cobra.Command{
	Use:   "review <product-id>",
	Short: "Leave a review for a purchased product",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete your review of a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewDelete,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(reviewCmd)
	ordersCmd.AddCommand(ordersCancelCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)
	reviewCmd.AddCommand(reviewDeleteCmd)

	reviewCmd.Flags().IntVar(&reviewRating, "rating", 0, "Rating from 1 to 5")
	reviewCmd.Flags().StringVar(&reviewComment, "comment", "", "Review text")
	_ = reviewCmd.MarkFlagRequired("rating")
}

func runOrders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	orders, err := a.api.Orders(ctx, token)
	if err != nil {
		return reportErr(err)
	}
	if len(orders) == 0 {
		fmt.Println("You have no orders yet")
		return nil
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	for _, o := range orders {
		fmt.Printf("#%d  %s  %s  %.2f ₽\n", o.ID, format.DateTime(o.CreatedAt), statusLabel(o.Status), o.FinalPrice)
		for _, it := range o.Items {
			fmt.Printf("      %s × %d\n", it.Product.Name, it.Quantity)
		}
	}
	return nil
}

func statusLabel(status string) string {
	switch status {
	case models.StatusProcessing:
		return "🛒 in cart"
	case models.StatusSent:
		return "🚚 on the way"
	case models.StatusDelivered:
		return "📬 delivered"
	case models.StatusCancelled:
		return "✖ cancelled"
	}
	return status
}

func runOrdersCancel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	if err := a.api.CancelOrder(ctx, token, orderID); err != nil {
		return reportErr(err)
	}
	fmt.Printf("✖ Order #%d cancelled\n", orderID)
	return nil
}

func runOrdersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	if err := a.api.DeleteOrder(ctx, token, orderID); err != nil {
		return reportErr(err)
	}
	// The deleted order might have been the active cart.
	a.cart.Hydrate(ctx, token)
	fmt.Printf("🗑️ Order #%d deleted\n", orderID)
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	if reviewRating < 1 || reviewRating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", reviewRating)
	}

	if err := a.api.SubmitReview(ctx, token, productID, reviewRating, reviewComment); err != nil {
		return reportErr(err)
	}
	fmt.Println("⭐ Thanks for your review!")
	return nil
}

func runReviewDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	if err := a.api.DeleteMyReview(ctx, token, productID); err != nil {
		return reportErr(err)
	}
	fmt.Println("🗑️ Review deleted")
	return nil
}
