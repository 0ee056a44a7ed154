package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	RunE:  runCartShow,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

var cartDecreaseCmd = &cobra.Command{
	Use:   "decrease <product-id>",
	Short: "Remove one unit of a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartDecrease,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart entirely",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole cart",
	RunE:  runCartClear,
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place the order",
	RunE:  runCartCheckout,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartDecreaseCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
	cartCmd.AddCommand(cartCheckoutCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	view, err := a.cart.Reconcile(ctx, token)
	if err != nil {
		return reportErr(err)
	}
	if view.Empty() {
		fmt.Println("🛒 Your cart is empty")
		return nil
	}

	fmt.Printf("🛒 Cart (%d product(s)):\n", a.cart.DistinctCount())
	for _, line := range view.Lines {
		fmt.Printf("%4d  %-30s %d × %.2f ₽ = %.2f ₽", line.Product.ID, line.Product.Name, line.Quantity, line.UnitPrice, line.Total)
		if line.PrevTotal != 0 {
			fmt.Printf("  (was %.2f ₽)", line.PrevTotal)
		}
		fmt.Println()
	}
	fmt.Printf("\nTotal: %.2f ₽\n", view.Total)
	if view.Discounted() {
		fmt.Printf("🎁 %s: -%d%%, to pay %.2f ₽\n", bonusLabel(view.BonusTitle), view.DiscountPercent, view.FinalPrice)
	}
	return nil
}

func bonusLabel(title string) string {
	if title == "" {
		return "Loyalty bonus"
	}
	return title
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	return cartWrite(cmd, args[0], func(ctx context.Context, a *app, token string, productID int) error {
		return a.api.AddItem(ctx, token, productID)
	}, "➕ Added to cart")
}

func runCartSet(cmd *cobra.Command, args []string) error {
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return cartWrite(cmd, args[0], func(ctx context.Context, a *app, token string, productID int) error {
		return setQuantity(ctx, a, token, productID, qty)
	}, "✏️ Quantity updated")
}

// setQuantity routes quantities below one to the decrease endpoint, which
// removes the line once it hits zero; the set endpoint rejects them.
func setQuantity(ctx context.Context, a *app, token string, productID, qty int) error {
	if qty < 1 {
		return a.api.DecreaseItem(ctx, token, productID)
	}
	return a.api.SetItemQuantity(ctx, token, productID, qty)
}

func runCartDecrease(cmd *cobra.Command, args []string) error {
	return cartWrite(cmd, args[0], func(ctx context.Context, a *app, token string, productID int) error {
		return a.api.DecreaseItem(ctx, token, productID)
	}, "➖ Removed one unit")
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	return cartWrite(cmd, args[0], func(ctx context.Context, a *app, token string, productID int) error {
		return a.api.RemoveItem(ctx, token, productID)
	}, "🗑️ Removed from cart")
}

// cartWrite runs one cart mutation: backend write first, then a re-hydrate
// so the snapshot reflects what the server actually stored.
func cartWrite(cmd *cobra.Command, rawID string, write func(context.Context, *app, string, int) error, done string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid product id %q", rawID)
	}

	if err := write(ctx, a, token, productID); err != nil {
		return reportErr(err)
	}
	a.cart.Hydrate(ctx, token)

	fmt.Printf("%s. Cart: %d product(s)\n", done, a.cart.DistinctCount())
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	order, ok := a.cart.Order()
	if !ok {
		fmt.Println("🛒 Your cart is already empty")
		return nil
	}
	if err := a.api.DeleteOrder(ctx, token, order.ID); err != nil {
		return reportErr(err)
	}
	a.cart.Hydrate(ctx, token)
	fmt.Println("🗑️ Cart deleted")
	return nil
}

func runCartCheckout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}

	if a.cart.DistinctCount() == 0 {
		fmt.Println("🛒 Your cart is empty, nothing to order")
		return nil
	}
	if err := a.api.PlaceOrder(ctx, token); err != nil {
		return reportErr(err)
	}
	a.cart.Hydrate(ctx, token)
	fmt.Println("🚚 Order placed! Track it with 'store orders'")
	return nil
}
