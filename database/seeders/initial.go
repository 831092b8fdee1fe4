package seeders

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/config"
	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

func init() {
	Register("admin", SeedAdmin)
	Register("menu", SeedMenu)
}

// SeedAdmin provisions the initial admin account. Sign-up never grants
// privileged roles, so this is the only way an ADMIN comes into existence.
func SeedAdmin(ctx context.Context, st store.Store) error {
	var existing []models.User
	if err := st.Find(ctx, store.Users, store.Filter{"username": "admin"}, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	digest, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "change-me-now"))
	if err != nil {
		return err
	}

	admin := models.User{
		ID:          store.NewID(),
		Roles:       []string{models.RoleAdmin},
		FirstName:   "Tavola",
		LastName:    "Admin",
		Username:    "admin",
		PhoneNumber: "0000000000",
		Password:    digest,
	}
	return st.Create(ctx, store.Users, &admin)
}

// SeedMenu inserts a starter menu with side and upsell links so the
// recursive edges have something to resolve right away.
func SeedMenu(ctx context.Context, st store.Store) error {
	var existing []models.Item
	if err := st.Find(ctx, store.Items, nil, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fries := models.Item{
		ID:          store.NewID(),
		Description: "Hand-cut fries",
		Category:    models.CategorySide,
		Tags:        []string{"hot", "vegetarian"},
		Price:       "3.50",
	}
	salad := models.Item{
		ID:          store.NewID(),
		Description: "House salad",
		Category:    models.CategorySide,
		Tags:        []string{"cold", "vegetarian"},
		Price:       "4.00",
	}
	shake := models.Item{
		ID:          store.NewID(),
		Description: "Vanilla shake",
		Category:    models.CategoryUpsell,
		Tags:        []string{"cold", "sweet"},
		Price:       "5.25",
	}
	burger := models.Item{
		ID:          store.NewID(),
		Description: "Classic cheeseburger",
		Category:    models.CategoryEntre,
		Tags:        []string{"hot", "meat"},
		Price:       "11.75",
		SideIDs:     []string{fries.ID, salad.ID},
		UpsellIDs:   []string{shake.ID},
	}
	soup := models.Item{
		ID:          store.NewID(),
		Description: "Soup of the day",
		Category:    models.CategoryAppetizer,
		Tags:        []string{"hot"},
		Price:       "6.00",
	}
	brownie := models.Item{
		ID:          store.NewID(),
		Description: "Fudge brownie",
		Category:    models.CategoryDesert,
		Tags:        []string{"sweet"},
		Price:       "4.50",
	}
	coffee := models.Item{
		ID:          store.NewID(),
		Description: "Drip coffee",
		Category:    models.CategoryDrink,
		Tags:        []string{"hot"},
		Price:       "2.75",
	}

	for _, item := range []models.Item{fries, salad, shake, burger, soup, brownie, coffee} {
		if err := st.Create(ctx, store.Items, &item); err != nil {
			return fmt.Errorf("seed item %q: %w", item.Description, err)
		}
	}
	return nil
}
