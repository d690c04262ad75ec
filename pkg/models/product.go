package models

// Product is a row of the products table. Only the key is read.
type Product struct {
	ID int64 `json:"product_id"`
}
