package model

// Item is a cosmetic item sold in the marketplace
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Icon  string `json:"icon"`
}

// DefaultItems returns the marketplace stock
func DefaultItems() []Item {
	return []Item{
		{ID: "teapot", Name: "Teapot", Price: 10, Icon: "🫖"},
	}
}
