package catalog

import "github.com/bowlapp/storefront/internal/core/domain"

// placeholderImages is the fixed palette used when a bowl arrives without
// imagery. Assignment is id mod len(palette), so the same bowl always gets
// the same image across fetches.
var placeholderImages = []string{
	"https://static.bowlapp.com/img/bowl-green.jpg",
	"https://static.bowlapp.com/img/bowl-poke.jpg",
	"https://static.bowlapp.com/img/bowl-grain.jpg",
	"https://static.bowlapp.com/img/bowl-acai.jpg",
	"https://static.bowlapp.com/img/bowl-buddha.jpg",
}

// PlaceholderImage returns the deterministic fallback image for a bowl id.
func PlaceholderImage(id int) string {
	idx := id % len(placeholderImages)
	if idx < 0 {
		idx += len(placeholderImages)
	}
	return placeholderImages[idx]
}

// fallbackBowls is the bundled static catalog served whenever the remote
// source is unavailable.
var fallbackBowls = []domain.Bowl{
	{
		ID:          1,
		Name:        "Green Garden Bowl",
		Ingredients: []string{"kale", "quinoa", "avocado", "edamame", "lemon dressing"},
		Description: "Crisp greens and grains with a bright citrus finish.",
		Price:       11.50,
	},
	{
		ID:          2,
		Name:        "Salmon Poke Bowl",
		Ingredients: []string{"sushi rice", "salmon", "cucumber", "nori", "sesame"},
		Description: "Classic poke with fresh salmon over seasoned rice.",
		Price:       14.90,
	},
	{
		ID:          3,
		Name:        "Spicy Tofu Bowl",
		Ingredients: []string{"brown rice", "tofu", "sriracha mayo", "carrot", "scallion"},
		Description: "Charred tofu with a slow-building chili kick.",
		Price:       10.90,
	},
	{
		ID:          4,
		Name:        "Acai Sunrise Bowl",
		Ingredients: []string{"acai", "banana", "granola", "coconut", "berries"},
		Description: "A chilled breakfast bowl topped with crunchy granola.",
		Price:       9.50,
	},
	{
		ID:          5,
		Name:        "Buddha Bowl",
		Ingredients: []string{"sweet potato", "chickpeas", "spinach", "tahini", "pumpkin seeds"},
		Description: "Roasted vegetables and chickpeas under a tahini drizzle.",
		Price:       12.50,
	},
	{
		ID:          6,
		Name:        "Teriyaki Chicken Bowl",
		Ingredients: []string{"jasmine rice", "chicken", "teriyaki glaze", "broccoli", "sesame"},
		Price:       13.90,
	},
}

// FallbackBowls returns a copy of the bundled catalog with placeholder
// imagery filled in.
func FallbackBowls() []domain.Bowl {
	out := make([]domain.Bowl, len(fallbackBowls))
	for i, b := range fallbackBowls {
		clone := b.Clone()
		if clone.Image == "" {
			clone.Image = PlaceholderImage(clone.ID)
		}
		out[i] = clone
	}
	return out
}
