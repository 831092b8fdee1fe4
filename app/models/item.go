package models

// MenuCategory values form a closed set. The ENTRE and DESERT spellings are
// part of the wire contract and deliberately preserved.
const (
	CategoryAppetizer = "APPETIZER"
	CategoryEntre     = "ENTRE"
	CategorySide      = "SIDE"
	CategoryDesert    = "DESERT"
	CategoryDrink     = "DRINK"
	CategoryUpsell    = "UPSELL"
)

// AllCategories lists every valid menu category.
var AllCategories = []string{
	CategoryAppetizer,
	CategoryEntre,
	CategorySide,
	CategoryDesert,
	CategoryDrink,
	CategoryUpsell,
}

// ValidCategory reports whether c is a member of the category enum.
func ValidCategory(c string) bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Item is a menu entry. Sides and upsells reference other items by id; the
// storage layer permits cycles (an item can reach itself through them), so
// expansion is always bounded by the resolver's recursion cap.
type Item struct {
	ID          string   `bson:"_id,omitempty" json:"_id"`
	Description string   `bson:"itemDescription" json:"itemDescription"`
	Category    string   `bson:"menuCategory" json:"menuCategory"`
	Tags        []string `bson:"tags" json:"tags"`
	Price       string   `bson:"itemPrice" json:"itemPrice"` // decimal as text, e.g. "12.50"
	ImageURL    string   `bson:"itemImageURL" json:"itemImageURL"`
	SideIDs     []string `bson:"sideIds" json:"sideIds"`
	UpsellIDs   []string `bson:"upsellIds" json:"upsellIds"`
}

// Menu is a derived, read-only view grouping all items by category. It is
// computed from the item collection, never persisted.
type Menu struct {
	Entrees    []Item `json:"entrees"`
	Sides      []Item `json:"sides"`
	Appetizers []Item `json:"appetizers"`
	Deserts    []Item `json:"deserts"`
	Drinks     []Item `json:"drinks"`
	Upsells    []Item `json:"upsells"`
}
