package model

// Product is a catalog entry as returned by the upstream API. Every field is
// optional since upstream may omit any of them.
type Product struct {
	ID     *string `json:"id"`
	Handle *string `json:"handle"`
	Title  *string `json:"title"`
}
