package models

// CartItem pairs a product with a purchase quantity. The store keeps at most
// one CartItem per product id; a quantity reaching zero removes the item.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price x quantity for the item.
func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// CartSubtotal sums the line totals of all items.
func CartSubtotal(items []CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal
}
