// Package catalog holds the static product list. It is an ordered slice,
// not a map, so keyboards and the seeded products table always render in
// the same order.
package catalog

type Product struct {
	ID    string
	Name  string
	Price float64
	Emoji string
}

var products = []Product{
	{ID: "math_book", Name: "Math Book", Price: 1.70, Emoji: "📐"},
	{ID: "human_society", Name: "Human & Society", Price: 1.99, Emoji: "👥"},
	{ID: "business", Name: "Principle of Business", Price: 1.99, Emoji: "💼"},
	{ID: "computer", Name: "Computer Book", Price: 2.50, Emoji: "💻"},
}

// Products returns the catalog in display order.
func Products() []Product {
	return products
}

// ByID returns the product with the given id, if any.
func ByID(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
