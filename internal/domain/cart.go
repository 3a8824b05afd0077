package domain

// CartLine is a single cart entry as stored by the commerce backend:
// a product reference plus a quantity. Quantities are always positive;
// a removal is expressed by dropping the line.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// PricedLine joins a cart line with its resolved catalog product and
// the extended line subtotal in minor units.
type PricedLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
	Subtotal int64   `json:"subtotal"`
}

// PricedCart is the fully priced view of a cart: resolved lines plus
// money totals in minor units. Shipping is currently always zero, so
// Total equals Subtotal; the fields stay separate so a future shipping
// charge does not change the shape.
type PricedCart struct {
	Lines    []PricedLine `json:"lines"`
	Subtotal int64        `json:"subtotal"`
	Shipping int64        `json:"shipping"`
	Total    int64        `json:"total"`
}

// ItemCount returns the total unit count across all lines.
func (c PricedCart) ItemCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no lines.
func (c PricedCart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// AggregateCart joins raw cart lines against the catalog and prices the
// result. Lines whose product no longer exists in the catalog are
// dropped silently: a stale reference must never surface as an error or
// a zero-priced row. Line order is preserved.
func AggregateCart(lines []CartLine, catalog []Product) PricedCart {
	byID := make(map[int64]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	cart := PricedCart{Lines: make([]PricedLine, 0, len(lines))}
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		sub := p.Price * l.Quantity
		cart.Lines = append(cart.Lines, PricedLine{
			Product:  p,
			Quantity: l.Quantity,
			Subtotal: sub,
		})
		cart.Subtotal += sub
	}
	cart.Total = cart.Subtotal + cart.Shipping
	return cart
}
