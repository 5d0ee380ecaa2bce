// Package models provides the data structures shared across the application.
package models

import "fmt"

// Category identifies a spending category. The set of categories is closed
// and known at compile time; the classifier never invents new ones.
type Category string

const (
	CategoryFoodBeverage   Category = "Makanan & Minuman"
	CategoryTransportation Category = "Transportasi"
	CategoryBills          Category = "Tagihan"
	CategoryShopping       Category = "Belanja"
	CategoryEntertainment  Category = "Hiburan"
	CategoryHealth         Category = "Kesehatan"
	CategoryEducation      Category = "Pendidikan"
	CategoryInvestment     Category = "Investasi"

	// CategoryOther is the catch-all returned when no classifier clears its
	// confidence floor. It carries no keywords and is never scored directly.
	CategoryOther Category = "Lainnya"
)

// AllCategories returns every category in declaration order, catch-all last.
// The order is meaningful: the keyword classifier breaks score ties in favor
// of the earlier category.
func AllCategories() []Category {
	return []Category{
		CategoryFoodBeverage,
		CategoryTransportation,
		CategoryBills,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealth,
		CategoryEducation,
		CategoryInvestment,
		CategoryOther,
	}
}

// ParseCategory validates that name belongs to the closed category set.
func ParseCategory(name string) (Category, error) {
	for _, c := range AllCategories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", name)
}

// String returns the category label as used on the wire and in training data.
func (c Category) String() string {
	return string(c)
}
