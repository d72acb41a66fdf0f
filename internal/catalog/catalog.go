// Package catalog holds the bundled menu the storefront falls back to when
// the remote menu collection is empty. It is also the source for one-time
// seeding. Item IDs here are human-chosen slugs; once seeded, the store
// assigns its own identifiers and keeps the slug as original_id.
package catalog

import "github.com/shopspring/decimal"

type Item struct {
	ID          string
	Name        string
	Description string
	// Price in naira. Zero means variable pricing; PriceNote explains.
	Price     decimal.Decimal
	PriceNote string
	Type      string
	Image     string
}

type Section struct {
	Category string
	Items    []Item
}

type Menu struct {
	Snacks Section
	Meals  Section
}

// Default returns the bundled catalog.
func Default() Menu {
	return Menu{
		Snacks: Section{
			Category: "Small Chops & Snacks",
			Items: []Item{
				{
					ID:          "pack-2000",
					Name:        "Small Chops Pack - ₦2,000",
					Price:       decimal.NewFromInt(2000),
					Description: "1 Samosa • 1 Spring Roll • 5 Puff Puff • 1 Beef",
					Type:        "pack",
					Image:       "/images/small-chops.jpg",
				},
				{
					ID:          "pack-3000",
					Name:        "Small Chops Pack - ₦3,000",
					Price:       decimal.NewFromInt(3000),
					Description: "2 Samosa • 2 Spring Roll • 6 Puff Puff • 1 Beef",
					Type:        "pack",
					Image:       "/images/small-chops.jpg",
				},
				{
					ID:          "pack-4500",
					Name:        "Small Chops Pack - ₦4,500",
					Price:       decimal.NewFromInt(4500),
					Description: "3 Samosa • 3 Spring Roll • 8 Puff Puff • 3 Beef",
					Type:        "pack",
					Image:       "/images/small-chops.jpg",
				},
				{
					ID:          "platter-9000",
					Name:        "Small Chops Platter - ₦9,000",
					Price:       decimal.NewFromInt(9000),
					Description: "6 Samosa • 6 Spring Roll • 15 Puff Puff • 1 Chicken",
					Type:        "platter",
					Image:       "/images/platter.jpg",
				},
				{
					ID:          "platter-12000",
					Name:        "Small Chops Platter - ₦12,000",
					Price:       decimal.NewFromInt(12000),
					Description: "8 Samosa • 8 Spring Roll • 20 Puff Puff • 2 Chicken",
					Type:        "platter",
					Image:       "/images/platter.jpg",
				},
				{
					ID:          "platter-20000",
					Name:        "Small Chops Platter - ₦20,000",
					Price:       decimal.NewFromInt(20000),
					Description: "10 Samosa • 10 Spring Roll • 30 Puff Puff • 3 Chicken",
					Type:        "platter",
					Image:       "/images/platter.jpg",
				},
				{
					ID:          "meat-pie",
					Name:        "Meat Pie",
					Price:       decimal.NewFromInt(800),
					Description: "Delicious beef-filled pastry",
					Type:        "individual",
					Image:       "/images/meat-pie.jpg",
				},
				{
					ID:          "egg-roll",
					Name:        "Egg Roll",
					Price:       decimal.NewFromInt(600),
					Description: "Soft dough wrapped around boiled egg",
					Type:        "individual",
					Image:       "/images/egg-roll.jpg",
				},
				{
					ID:          "fish-roll",
					Name:        "Fish Roll",
					Price:       decimal.NewFromInt(500),
					Description: "Crispy fish-filled pastry",
					Type:        "individual",
					Image:       "/images/fish-roll.jpg",
				},
				{
					ID:          "chicken-pie",
					Name:        "Chicken Pie",
					Price:       decimal.NewFromInt(1000),
					Description: "Flaky pastry with seasoned chicken",
					Type:        "individual",
					Image:       "/images/chicken-pie.jpg",
				},
				{
					ID:          "shawarma",
					Name:        "Shawarma",
					Price:       decimal.NewFromInt(4500),
					Description: "Premium chicken shawarma wrap",
					Type:        "individual",
					Image:       "/images/shawarma.jpg",
				},
				{
					ID:          "samosa",
					Name:        "Samosa",
					Price:       decimal.NewFromInt(200),
					Description: "Crispy triangular pastry",
					Type:        "extra",
					Image:       "/images/samosa.jpg",
				},
				{
					ID:          "spring-roll",
					Name:        "Spring Roll",
					Price:       decimal.NewFromInt(200),
					Description: "Crispy vegetable spring roll",
					Type:        "extra",
					Image:       "/images/spring-roll.jpg",
				},
				{
					ID:          "puff-puff",
					Name:        "Puff Puff",
					Price:       decimal.NewFromInt(50),
					Description: "Sweet fried dough balls",
					Type:        "extra",
					Image:       "/images/puff-puff.jpg",
				},
				{
					ID:          "beef",
					Name:        "Beef",
					Price:       decimal.NewFromInt(500),
					Description: "Seasoned beef piece",
					Type:        "extra",
					Image:       "/images/beef.jpg",
				},
				{
					ID:          "chicken",
					Name:        "Chicken",
					Price:       decimal.NewFromInt(1200),
					Description: "Seasoned chicken piece",
					Type:        "extra",
					Image:       "/images/chicken.jpg",
				},
			},
		},
		Meals: Section{
			Category: "Main Dishes",
			Items: []Item{
				{
					ID:          "jollof-rice",
					Name:        "Jollof & Fried Rice",
					Price:       decimal.Zero,
					Description: "Classic Nigerian party rice with your choice of protein",
					Type:        "rice",
					PriceNote:   "Price varies based on portion and protein",
					Image:       "/images/jollof-rice.jpg",
				},
				{
					ID:          "nigerian-soups",
					Name:        "Rich Nigerian Soups",
					Price:       decimal.Zero,
					Description: "Egusi, Ogbono, Efo Riro, and more with swallow",
					Type:        "soup",
					PriceNote:   "Price varies based on soup type and portion",
					Image:       "/images/soups.jpg",
				},
				{
					ID:          "spaghetti",
					Name:        "Spaghetti",
					Price:       decimal.Zero,
					Description: "Delicious Nigerian-style spaghetti with protein",
					Type:        "pasta",
					PriceNote:   "Price varies based on portion and protein",
					Image:       "/images/spaghetti.jpg",
				},
				{
					ID:          "pepper-soup",
					Name:        "Pepper Soup",
					Price:       decimal.Zero,
					Description: "Spicy Nigerian pepper soup - Goat, Fish, or Chicken",
					Type:        "soup",
					PriceNote:   "Price varies based on meat type",
					Image:       "/images/pepper-soup.jpg",
				},
			},
		},
	}
}

// Find returns the catalog item with the given slug ID.
func (m Menu) Find(id string) (Item, string, bool) {
	for _, it := range m.Snacks.Items {
		if it.ID == id {
			return it, "snacks", true
		}
	}
	for _, it := range m.Meals.Items {
		if it.ID == id {
			return it, "meals", true
		}
	}
	return Item{}, "", false
}
