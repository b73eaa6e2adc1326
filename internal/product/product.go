package product

// Product is a catalog item. SuitableTypes lists the skin types the item is
// recommended for and feeds the quiz recommendation endpoint.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Quantity      int      `json:"quantity"`
	CategoryID    int      `json:"categoryId"`
	SuitableTypes []string `json:"suitableTypes"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}
