package memory

import (
	"context"
	"fmt"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type seedProduct struct {
	product entity.Product
	stock   int
}

var demoProducts = []seedProduct{
	{entity.Product{
		ID: "oil-1", Name: "0W-20", Brand: "Toyota", Type: "0W-20", Category: entity.CategoryOil,
		Price: price("39.99"), SKU: "TOY-OIL-0W20", Image: "/oils/toyota-0w20.jpg",
		Description: "Genuine Toyota 0W-20 Synthetic Oil",
		Volumes: []entity.Volume{
			{Size: "5L", Price: price("39.99")},
			{Size: "4L", Price: price("34.99")},
			{Size: "1L", Price: price("11.99")},
			{Size: "500ml", Price: price("6.99")},
		},
	}, 100},
	{entity.Product{
		ID: "oil-2", Name: "5W-30", Brand: "Shell", Type: "5W-30", Category: entity.CategoryOil,
		Price: price("45.99"), SKU: "SHL-OIL-5W30", Image: "/oils/shell-5w30.jpg",
		Description: "Shell Helix 5W-30 Synthetic Oil",
		Volumes: []entity.Volume{
			{Size: "5L", Price: price("45.99")},
			{Size: "4L", Price: price("39.99")},
			{Size: "1L", Price: price("13.99")},
			{Size: "500ml", Price: price("7.99")},
		},
	}, 150},
	{entity.Product{
		ID: "filter-1", Name: "Oil Filter - Premium", Brand: "Toyota", Type: "Oil Filter", Category: entity.CategoryFilters,
		Price: price("19.99"), SKU: "TOY-FLT-OIL-P", Image: "/filters/toyota-oil-filter.jpg",
		Description: "Premium Toyota Oil Filter",
	}, 75},
	{entity.Product{
		ID: "filter-2", Name: "Air Filter - Standard", Brand: "Honda", Type: "Air Filter", Category: entity.CategoryFilters,
		Price: price("14.99"), SKU: "HON-FLT-AIR-S", Image: "/filters/honda-air-filter.jpg",
		Description: "Standard Honda Air Filter",
	}, 50},
	{entity.Product{
		ID: "part-1", Name: "Brake Pads", Category: entity.CategoryParts,
		Price: price("45.99"), SKU: "BRK-PAD-001", Description: "High-performance brake pads",
	}, 30},
	{entity.Product{
		ID: "add-1", Name: "Fuel System Cleaner", Category: entity.CategoryAdditives,
		Price: price("14.99"), SKU: "ADD-FSC-001", Description: "Professional fuel system cleaning solution",
	}, 60},
}

// DemoCategories is the initial category collection
func DemoCategories() []string {
	return []string{entity.CategoryOil, entity.CategoryFilters, entity.CategoryParts, entity.CategoryAdditives}
}

// DemoProducts returns the POS catalog
func DemoProducts() []entity.Product {
	out := make([]entity.Product, len(demoProducts))
	for i, sp := range demoProducts {
		out[i] = cloneProduct(sp.product)
	}
	return out
}

// DemoItems returns the inventory backing the catalog. Item ids match product
// ids so checkout can decrement stock.
func DemoItems() []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(demoProducts))
	for i, sp := range demoProducts {
		p := cloneProduct(sp.product)
		out[i] = entity.InventoryItem{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Stock:       sp.stock,
			Price:       p.Price,
			Brand:       p.Brand,
			Type:        p.Type,
			Image:       p.Image,
			Description: p.Description,
			SKU:         p.SKU,
			IsOil:       p.HasVolumes(),
			Volumes:     p.Volumes,
		}
	}
	return out
}

// DemoUsers returns the initial back-office users
func DemoUsers() []entity.User {
	return []entity.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: enum.UserRoleAdmin},
		{ID: "2", Name: "Manager User", Email: "manager@example.com", Role: enum.UserRoleManager},
		{ID: "3", Name: "Staff User", Email: "staff@example.com", Role: enum.UserRoleStaff},
	}
}

// Seed loads the demo categories, items and users
func Seed(ctx context.Context, inventory *InventoryStore, users domainRepo.UserRepository) error {
	categories := inventory.Categories()
	for _, c := range DemoCategories() {
		if _, err := categories.Add(ctx, c); err != nil {
			return fmt.Errorf("seed category %q: %w", c, err)
		}
	}

	items := inventory.Items()
	for _, item := range DemoItems() {
		if err := items.Create(ctx, &item); err != nil {
			return fmt.Errorf("seed item %q: %w", item.ID, err)
		}
	}

	for _, u := range DemoUsers() {
		if err := users.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
	}
	return nil
}
