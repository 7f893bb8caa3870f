package menu

import (
	"errors"
	"fmt"
)

// Category groups menu items on the menu page
type Category string

const (
	CategoryAppetizers Category = "appetizers"
	CategoryMains      Category = "mains"
	CategorySeafood    Category = "seafood"
	CategoryDesserts   Category = "desserts"
	CategoryBeverages  Category = "beverages"
)

// ErrUnknownCategory is returned by ByCategory for a category that is not on the menu
var ErrUnknownCategory = errors.New("unknown menu category")

// Item is a dish or drink offered by the restaurant
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

// Categories lists every category in display order
func Categories() []Category {
	return []Category{CategoryAppetizers, CategoryMains, CategorySeafood, CategoryDesserts, CategoryBeverages}
}

// ParseCategory checks that s names a known category
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// All returns a copy of the full menu
func All() []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.clone())
	}
	return out
}

// ByCategory returns the items of one category in menu order
func ByCategory(category string) ([]Item, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0)
	for _, it := range items {
		if it.Category == c {
			out = append(out, it.clone())
		}
	}
	return out, nil
}

// Find returns the item with the given id
func Find(id int) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it.clone(), true
		}
	}
	return Item{}, false
}

func (it Item) clone() Item {
	it.Tags = append([]string(nil), it.Tags...)
	return it
}

const imageParams = "?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"

var items = []Item{
	{
		ID:          1,
		Name:        "Egyptian Mezze Platter",
		Description: "A selection of hummus, babaganoush, tabbouleh, and freshly baked pita bread with olive oil",
		Price:       165,
		Category:    CategoryAppetizers,
		Image:       "https://images.unsplash.com/photo-1626645738196-c2a7c87a8f58" + imageParams,
		Tags:        []string{"Chef's Choice", "Vegetarian"},
	},
	{
		ID:          2,
		Name:        "Seafood Bisque",
		Description: "Creamy soup with prawns, mussels and scallops, finished with a touch of saffron and cream",
		Price:       140,
		Category:    CategoryAppetizers,
		Image:       "https://images.unsplash.com/photo-1679395822144-ef490c02b262" + imageParams,
		Tags:        []string{"Signature"},
	},
	{
		ID:          3,
		Name:        "Herb-Crusted Lamb Rack",
		Description: "Premium Australian lamb rack crusted with fresh herbs, served with potato gratin and seasonal vegetables",
		Price:       360,
		Category:    CategoryMains,
		Image:       "https://images.unsplash.com/photo-1615937691194-97dbd3f3dc29" + imageParams,
		Tags:        []string{"Signature"},
	},
	{
		ID:          4,
		Name:        "Seafood Risotto",
		Description: "Arborio rice cooked with fresh seafood, saffron, and finished with aged parmesan",
		Price:       280,
		Category:    CategorySeafood,
		Image:       "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2" + imageParams,
		Tags:        []string{"Chef's Choice"},
	},
	{
		ID:          5,
		Name:        "Filet Mignon",
		Description: "200g premium beef tenderloin with truffle mashed potatoes, asparagus, and red wine reduction",
		Price:       420,
		Category:    CategoryMains,
		Image:       "https://images.unsplash.com/photo-1555939594-58d7cb561ad1" + imageParams,
		Tags:        []string{"Signature"},
	},
	{
		ID:          6,
		Name:        "Chocolate Pyramid",
		Description: "Dark chocolate mousse pyramid with hazelnut center, gold leaf, and raspberry coulis",
		Price:       130,
		Category:    CategoryDesserts,
		Image:       "https://images.unsplash.com/photo-1587314168485-3236d6710814" + imageParams,
		Tags:        []string{"Chef's Choice"},
	},
	{
		ID:          7,
		Name:        "Pan-Seared Sea Bass",
		Description: "Fresh Mediterranean sea bass with citrus beurre blanc, served with saffron risotto and grilled asparagus",
		Price:       340,
		Category:    CategorySeafood,
		Image:       "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2" + imageParams,
		Tags:        []string{"Chef's Choice"},
	},
	{
		ID:          8,
		Name:        "Molten Lava Cake",
		Description: "Warm chocolate cake with a molten center, served with vanilla bean ice cream and caramelized hazelnuts",
		Price:       120,
		Category:    CategoryDesserts,
		Image:       "https://images.unsplash.com/photo-1606313564200-e75d5e30476c" + imageParams,
		Tags:        []string{"Vegetarian"},
	},
	{
		ID:          9,
		Name:        "Saffron-infused Mojito",
		Description: "Premium rum, fresh mint, lime juice, and a touch of saffron syrup",
		Price:       95,
		Category:    CategoryBeverages,
		Image:       "https://images.unsplash.com/photo-1546171753-62642a3d7d61" + imageParams,
		Tags:        []string{"Signature"},
	},
}
