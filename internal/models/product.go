package models

// Product is identified by ID. ID and UserID are assigned by the server and
// never sent back in a payload.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity *int    `json:"quantity,omitempty"`
	UserID   string  `json:"user_id,omitempty"`
}

// ProductPayload carries the mutable fields of a product.
type ProductPayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity *int    `json:"quantity,omitempty"`
}

func (p Product) Payload() ProductPayload {
	return ProductPayload{
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}
