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
	catalogCategory int
	catalogSort     string
	categoriesFull  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the product catalog",
	RunE:  runCatalog,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(categoriesCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogCmd.Flags().IntVar(&catalogCategory, "category", 0, "Only products from this category id")
	catalogCmd.Flags().StringVar(&catalogSort, "sort", "", "Sort by: price, rating or name")
	categoriesCmd.Flags().BoolVar(&categoriesFull, "full", false, "Include each category's products")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	var products []models.Product
	if catalogCategory > 0 {
		products, err = a.api.ProductsByCategory(ctx, catalogCategory)
	} else {
		products, err = a.api.Products(ctx)
	}
	if err != nil {
		return reportErr(err)
	}
	if len(products) == 0 {
		fmt.Println("The catalog is empty")
		return nil
	}

	// Ratings come from per-product review fetches; a failed fetch leaves
	// that product unrated rather than failing the whole listing.
	ratings := make(map[int]float64)
	for _, p := range products {
		reviews, err := a.api.ProductReviews(ctx, p.ID)
		if err != nil {
			a.logger.Debug("skipping rating", "product", p.ID, "error", err)
			continue
		}
		if avg, ok := format.AverageRating(reviews); ok {
			ratings[p.ID] = avg
		}
	}

	switch catalogSort {
	case "price":
		sort.Slice(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "rating":
		sort.Slice(products, func(i, j int) bool { return ratings[products[i].ID] > ratings[products[j].ID] })
	case "name":
		sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case "":
	default:
		return fmt.Errorf("unknown sort key %q (use price, rating or name)", catalogSort)
	}

	for _, p := range products {
		rating := "—"
		if avg, ok := ratings[p.ID]; ok {
			rating = fmt.Sprintf("%.1f★", avg)
		}
		stock := ""
		if p.StockQuantity == 0 {
			stock = "  (out of stock)"
		}
		fmt.Printf("%4d  %-30s %10.2f ₽  %s%s\n", p.ID, p.Name, p.Price, rating, stock)
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	p, err := a.api.Product(ctx, id)
	if err != nil {
		return reportErr(err)
	}

	fmt.Printf("📦 %s\n", p.Name)
	if p.Category != nil {
		fmt.Printf("   Category: %s\n", p.Category.Name)
	}
	fmt.Printf("   Price: %.2f ₽\n", p.Price)
	if p.StockQuantity == 0 {
		fmt.Println("   Out of stock")
	} else {
		fmt.Printf("   In stock: %d\n", p.StockQuantity)
	}
	if p.Description != "" {
		fmt.Printf("   %s\n", p.Description)
	}

	reviews, err := a.api.ProductReviews(ctx, id)
	if err != nil {
		a.logger.Debug("failed to load reviews", "product", id, "error", err)
		return nil
	}
	fmt.Printf("\n⭐ Rating: %s (%d review(s))\n", format.RatingLabel(reviews), len(reviews))
	for _, r := range reviews {
		fmt.Printf("   %d★  %s\n", r.Rating, r.Comment)
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	var categories []models.Category
	if categoriesFull {
		categories, err = a.api.CategoriesFull(ctx)
	} else {
		categories, err = a.api.Categories(ctx)
	}
	if err != nil {
		return reportErr(err)
	}
	if len(categories) == 0 {
		fmt.Println("No categories yet")
		return nil
	}
	for _, c := range categories {
		fmt.Printf("%4d  %s\n", c.ID, c.Name)
		for _, p := range c.Products {
			fmt.Printf("        %d  %s\n", p.ID, p.Name)
		}
	}
	return nil
}
