// Package domain 定义商品相关的业务领域模型和核心业务规则。
package domain

import (
	"errors"
	"strings"
)

// 商品目录的默认价格过滤上界（未指定 price_max 时视为不设上限）。
const UnboundedPrice = 1.7976931348623157e+308 // math.MaxFloat64

// Product 表示商品领域模型。
// JSON 字段名遵循目录交换格式（camelCase），与持久化文件和导入导出载荷保持一致。
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	IsOfficial    bool     `json:"isOfficial,omitempty"`
	Description   string   `json:"description"`
	Badge         string   `json:"badge,omitempty"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// Review 表示商品评价，归属于其父商品，不被共享。
type Review struct {
	ID           string `json:"id"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
}

// Category 表示静态分类参考标签，仅用于分组和过滤，与商品生命周期独立。
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Slug string `json:"slug"`
}

// Clone 返回商品的深拷贝快照（评价序列独立复制）。
func (p *Product) Clone() *Product {
	cp := *p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		cp.OriginalPrice = &v
	}
	if p.Reviews != nil {
		cp.Reviews = make([]Review, len(p.Reviews))
		copy(cp.Reviews, p.Reviews)
	}
	return &cp
}

// IsDiscounted 判断商品是否存在折扣基准价。
func (p *Product) IsDiscounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// ProductFilter 表示商品目录查询条件。
// 零值表示恒等过滤：返回完整目录。
type ProductFilter struct {
	Query     string   `json:"query"`      // 关键词，匹配名称或描述（不区分大小写）
	Category  string   `json:"category"`   // 分类 slug，"all" 或空表示全部
	Brands    []string `json:"brands"`     // 品牌集合，空表示全部
	PriceMin  float64  `json:"price_min"`  // 价格下界（含）
	PriceMax  float64  `json:"price_max"`  // 价格上界（含），0 值由调用方归一化为不设上限
	MinRating float64  `json:"min_rating"` // 最低评分，0 表示不过滤
}

// SubmitReviewRequest 表示评价提交请求。
type SubmitReviewRequest struct {
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Validate 校验评价提交请求；校验失败时不得发生任何状态变更。
func (r *SubmitReviewRequest) Validate() error {
	if strings.TrimSpace(r.ReviewerName) == "" {
		return errors.New("reviewer name is required")
	}
	if strings.TrimSpace(r.Comment) == "" {
		return errors.New("comment is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be an integer between 1 and 5")
	}
	return nil
}
