// Package domain 定义购物车与心愿单相关的领域模型。
package domain

// CartItem 表示购物车条目：商品快照加数量。
// 数量恒 ≥ 1；减到 1 以下时钳制为 1，不会隐式删除条目。
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// CartSummary 表示购物车的完整视图。
type CartSummary struct {
	Items []*CartItem `json:"items"`
	Total float64     `json:"total"` // Σ price × quantity
	Count int         `json:"count"` // Σ quantity，用于角标展示，区别于条目数
}

// AddCartItemRequest 表示加入购物车请求。
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

// AdjustCartItemRequest 表示购物车数量调整请求（增量语义）。
type AdjustCartItemRequest struct {
	Delta int `json:"delta"`
}

// ToggleWishlistRequest 表示心愿单切换请求。
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id"`
}
