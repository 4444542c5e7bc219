// internal/models/contract.go
//
// Wire shapes of the product registry contract. Exactly one field of a
// message must be set; the contract dispatches on the populated key.
package models

// QueryMsg is the contract's read-only message envelope.
type QueryMsg struct {
	GetProducts *GetProductsQuery `json:"get_products,omitempty"`
	GetProduct  *GetProductQuery  `json:"get_product,omitempty"`
}

type GetProductsQuery struct{}

type GetProductQuery struct {
	ID string `json:"id"`
}

// ProductsResponse is the contract's answer to get_products.
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// ExecuteMsg is the contract's state-changing message envelope.
type ExecuteMsg struct {
	RegisterProduct *RegisterProductMsg `json:"register_product,omitempty"`
	Buy             *BuyMsg             `json:"buy,omitempty"`
}

type RegisterProductMsg struct {
	ProductName     string `json:"product_name"`
	ProductPrice    Coin   `json:"product_price"`
	ProductQuantity uint64 `json:"product_quantity"`
}

type BuyMsg struct {
	ProductID string `json:"product_id"`
	Quantity  uint64 `json:"quantity"`
}

func NewGetProductsQuery() QueryMsg {
	return QueryMsg{GetProducts: &GetProductsQuery{}}
}

func NewGetProductQuery(id string) QueryMsg {
	return QueryMsg{GetProduct: &GetProductQuery{ID: id}}
}

func NewRegisterProductMsg(name string, price Coin, quantity uint64) ExecuteMsg {
	return ExecuteMsg{RegisterProduct: &RegisterProductMsg{
		ProductName:     name,
		ProductPrice:    price,
		ProductQuantity: quantity,
	}}
}

func NewBuyMsg(productID string, quantity uint64) ExecuteMsg {
	return ExecuteMsg{Buy: &BuyMsg{ProductID: productID, Quantity: quantity}}
}
