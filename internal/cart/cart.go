package cart

// Line is one cart entry. The cart holds at most one line per product and
// quantity never drops below 1; both invariants are enforced by the service.
type Line struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Total sums unit price times quantity over the given lines.
func Total(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Count sums quantities over the given lines.
func Count(lines []Line) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
