package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/format"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

var (
	productName        string
	productDescription string
	productPrice       float64
	productStock       int
	productImage       string
	productCategory    int
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands (admin role required)",
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the store dashboard",
	RunE:  runAdminStats,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List customers",
	RunE:  runAdminUsers,
}

var adminBlockCmd = &cobra.Command{
	Use:   "block <user-id>",
	Short: "Block or unblock a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminBlock,
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List all orders",
	RunE:  runAdminOrders,
}

var adminOrderStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Set an order's status (PROCESSING, SENT, DELIVERED, CANCELLED)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminOrderStatus,
}

var adminOrderDeleteCmd = &cobra.Command{
	Use:   "delete-order <order-id>",
	Short: "Delete any order",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminOrderDelete,
}

var adminProductCreateCmd = &cobra.Command{
	Use:   "create-product",
	Short: "Add a product to the catalog",
	RunE:  runAdminProductCreate,
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "update-product <product-id>",
	Short: "Update a catalog product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductUpdate,
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete-product <product-id>",
	Short: "Remove a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductDelete,
}

var adminCategoryCreateCmd = &cobra.Command{
	Use:   "create-category <name>",
	Short: "Add a product category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoryCreate,
}

var adminCategoryUpdateCmd = &cobra.Command{
	Use:   "update-category <category-id> <name>",
	Short: "Rename a product category",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminCategoryUpdate,
}

var adminCategoryDeleteCmd = &cobra.Command{
	Use:   "delete-category <category-id>",
	Short: "Remove a product category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoryDelete,
}

var adminReviewsCmd = &cobra.Command{
	Use:   "reviews <user-id>",
	Short: "List a customer's reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminReviews,
}

var adminReviewDeleteCmd = &cobra.Command{
	Use:   "delete-review <user-id> <product-id>",
	Short: "Delete any customer's review",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminReviewDelete,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminBlockCmd)
	adminCmd.AddCommand(adminOrdersCmd)
	adminCmd.AddCommand(adminOrderStatusCmd)
	adminCmd.AddCommand(adminOrderDeleteCmd)
	adminCmd.AddCommand(adminProductCreateCmd)
	adminCmd.AddCommand(adminProductUpdateCmd)
	adminCmd.AddCommand(adminProductDeleteCmd)
	adminCmd.AddCommand(adminCategoryCreateCmd)
	adminCmd.AddCommand(adminCategoryUpdateCmd)
	adminCmd.AddCommand(adminCategoryDeleteCmd)
	adminCmd.AddCommand(adminReviewsCmd)
	adminCmd.AddCommand(adminReviewDeleteCmd)

	for _, c := range []*cobra.Command{adminProductCreateCmd, adminProductUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().StringVar(&productDescription, "description", "", "Product description")
		c.Flags().Float64Var(&productPrice, "price", 0, "Price in rubles")
		c.Flags().IntVar(&productStock, "stock", 0, "Stock quantity")
		c.Flags().StringVar(&productImage, "image", "", "Image URL")
		c.Flags().IntVar(&productCategory, "category", 0, "Category id")
	}
	_ = adminProductCreateCmd.MarkFlagRequired("name")
	_ = adminProductCreateCmd.MarkFlagRequired("price")
}

// adminApp wires the stack and refuses non-admin sessions locally, before
// any admin endpoint gets called.
func adminApp(cmd *cobra.Command) (*app, string, error) {
	a, err := newApp(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	identity, ok := a.session.Current()
	if !ok {
		return nil, "", fmt.Errorf("please log in first: %w", models.ErrNotLoggedIn)
	}
	if !identity.IsAdmin() {
		return nil, "", fmt.Errorf("admin commands need an administrator session: %w", models.ErrForbidden)
	}
	return a, identity.Token, nil
}

func runAdminStats(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}

	stats, err := a.api.AdminStats(cmd.Context(), token)
	if err != nil {
		return reportErr(err)
	}

	fmt.Println("📊 Store dashboard")
	fmt.Printf("   Products:  %d\n", stats.ProductCount)
	fmt.Printf("   Customers: %d\n", stats.UserCount)
	fmt.Printf("   Orders: %d processing, %d sent, %d delivered, %d cancelled\n",
		stats.Orders.Processing, stats.Orders.Sent, stats.Orders.Delivered, stats.Orders.Cancelled)
	fmt.Printf("   Total sales: %.2f ₽\n", stats.Orders.TotalSales)
	return nil
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}

	users, err := a.api.AdminUsers(cmd.Context(), token)
	if err != nil {
		return reportErr(err)
	}
	for _, u := range users {
		blocked := ""
		if u.Blocked {
			blocked = "  🚫 blocked"
		}
		fmt.Printf("%4d  %-25s %s%s\n", u.ID, u.Name, u.Email, blocked)
	}
	return nil
}

func runAdminBlock(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	if err := a.api.AdminToggleUserBlock(cmd.Context(), token, userID); err != nil {
		return reportErr(err)
	}
	fmt.Printf("🔄 Toggled block for user #%d\n", userID)
	return nil
}

func runAdminOrders(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}

	orders, err := a.api.AdminOrders(cmd.Context(), token)
	if err != nil {
		return reportErr(err)
	}
	for _, o := range orders {
		fmt.Printf("#%d  %s  %s  %.2f ₽\n", o.ID, format.Date(o.CreatedAt), statusLabel(o.Status), o.FinalPrice)
	}
	return nil
}

func runAdminOrderStatus(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	status := args[1]
	switch status {
	case models.StatusProcessing, models.StatusSent, models.StatusDelivered, models.StatusCancelled:
	default:
		return fmt.Errorf("unknown status %q", status)
	}

	if err := a.api.AdminSetOrderStatus(cmd.Context(), token, orderID, status); err != nil {
		return reportErr(err)
	}
	fmt.Printf("✅ Order #%d is now %s\n", orderID, status)
	return nil
}

func runAdminOrderDelete(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	if err := a.api.AdminDeleteOrder(cmd.Context(), token, orderID); err != nil {
		return reportErr(err)
	}
	fmt.Printf("🗑️ Order #%d deleted\n", orderID)
	return nil
}

func productInputFromFlags() api.ProductInput {
	return api.ProductInput{
		Name:          productName,
		Description:   productDescription,
		Price:         productPrice,
		StockQuantity: productStock,
		Image:         productImage,
		CategoryID:    productCategory,
	}
}

func runAdminProductCreate(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}

	p, err := a.api.AdminCreateProduct(cmd.Context(), token, productInputFromFlags())
	if err != nil {
		return reportErr(err)
	}
	fmt.Printf("✅ Created product #%d %q\n", p.ID, p.Name)
	return nil
}

func runAdminProductUpdate(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	p, err := a.api.AdminUpdateProduct(cmd.Context(), token, productID, productInputFromFlags())
	if err != nil {
		return reportErr(err)
	}
	fmt.Printf("✅ Updated product #%d %q\n", p.ID, p.Name)
	return nil
}

func runAdminProductDelete(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	if err := a.api.AdminDeleteProduct(cmd.Context(), token, productID); err != nil {
		return reportErr(err)
	}
	fmt.Printf("🗑️ Product #%d deleted\n", productID)
	return nil
}

func runAdminCategoryCreate(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}

	c, err := a.api.AdminCreateCategory(cmd.Context(), token, args[0])
	if err != nil {
		return reportErr(err)
	}
	fmt.Printf("✅ Created category #%d %q\n", c.ID, c.Name)
	return nil
}

func runAdminCategoryUpdate(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	categoryID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}

	c, err := a.api.AdminUpdateCategory(cmd.Context(), token, categoryID, args[1])
	if err != nil {
		return reportErr(err)
	}
	fmt.Printf("✅ Category #%d is now %q\n", c.ID, c.Name)
	return nil
}

func runAdminCategoryDelete(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	categoryID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}

	if err := a.api.AdminDeleteCategory(cmd.Context(), token, categoryID); err != nil {
		return reportErr(err)
	}
	fmt.Printf("🗑️ Category #%d deleted\n", categoryID)
	return nil
}

func runAdminReviews(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	reviews, err := a.api.AdminUserReviews(cmd.Context(), token, userID)
	if err != nil {
		return reportErr(err)
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews from this user")
		return nil
	}
	for _, r := range reviews {
		fmt.Printf("product %d  %d★  %s\n", r.ID.ProductID, r.Rating, r.Comment)
	}
	return nil
}

func runAdminReviewDelete(cmd *cobra.Command, args []string) error {
	a, token, err := adminApp(cmd)
	if err != nil {
		return err
	}
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}
	productID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[1])
	}

	if err := a.api.AdminDeleteReview(cmd.Context(), token, userID, productID); err != nil {
		return reportErr(err)
	}
	fmt.Println("🗑️ Review deleted")
	return nil
}
