// Package repo 内置的默认商品目录与分类参考数据。
package repo

import (
	"github.com/MorseWayne/onos_store/internal/domain"
)

// DefaultCategories 返回静态分类参考列表。
func DefaultCategories() []*domain.Category {
	return []*domain.Category{
		{ID: "1", Name: "Phones & Tablets", Icon: "fa-mobile-screen-button", Slug: "phones"},
		{ID: "2", Name: "Electronics", Icon: "fa-tv", Slug: "electronics"},
		{ID: "3", Name: "Fashion", Icon: "fa-shirt", Slug: "fashion"},
		{ID: "4", Name: "Computing", Icon: "fa-laptop", Slug: "computing"},
		{ID: "5", Name: "Home & Office", Icon: "fa-couch", Slug: "home"},
		{ID: "6", Name: "Health & Beauty", Icon: "fa-pump-soap", Slug: "beauty"},
		{ID: "7", Name: "Supermarket", Icon: "fa-cart-shopping", Slug: "supermarket"},
		{ID: "8", Name: "Baby Products", Icon: "fa-baby", Slug: "baby"},
	}
}

// DefaultProducts 返回内置的默认商品目录。
// 持久化文件缺失或损坏时作为兜底数据使用。
func DefaultProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:            "p1",
			Name:          "Samsung Galaxy S23 Ultra 5G - 256GB - Phantom Black",
			Brand:         "Samsung",
			Price:         950.00,
			OriginalPrice: priceOf(1200.00),
			Image:         "https://picsum.photos/seed/s23/400/400",
			Category:      "phones",
			Rating:        4.8,
			ReviewCount:   154,
			IsOfficial:    true,
			Badge:         "Best Seller",
			Description:   "The ultimate flagship smartphone with high-performance camera and S-Pen. Features a 6.8-inch Dynamic AMOLED 2X display, Snapdragon 8 Gen 2 for Galaxy, and a revolutionary 200MP camera system.",
			Reviews: []domain.Review{
				{ID: "r1", ReviewerName: "John Doe", Rating: 5, Comment: "Incredible camera! The zoom is out of this world.", Date: "2023-10-12"},
				{ID: "r2", ReviewerName: "Alice Smith", Rating: 4, Comment: "Great phone, but quite large for small hands.", Date: "2023-11-05"},
			},
		},
		{
			ID:          "p2",
			Name:        "Apple iPhone 15 Pro Max - 256GB - Natural Titanium",
			Brand:       "Apple",
			Price:       1199.00,
			Image:       "https://picsum.photos/seed/iphone15/400/400",
			Category:    "phones",
			Rating:      4.9,
			ReviewCount: 89,
			IsOfficial:  true,
			Description: "Experience the power of Titanium and the most advanced chip in a smartphone. A Grade-5 titanium design makes this the lightest Pro model ever. Advanced camera system with 5x optical zoom.",
			Reviews: []domain.Review{
				{ID: "r3", ReviewerName: "Sarah K.", Rating: 5, Comment: "The titanium feel is amazing. Super fast!", Date: "2023-12-01"},
			},
		},
		{
			ID:            "p3",
			Name:          "HP Pavilion 15 - Intel Core i5 - 8GB RAM - 512GB SSD",
			Brand:         "HP",
			Price:         550.00,
			OriginalPrice: priceOf(650.00),
			Image:         "https://picsum.photos/seed/hp/400/400",
			Category:      "computing",
			Rating:        4.5,
			ReviewCount:   42,
			Badge:         "Flash Sale",
			Description:   "Perfect for productivity and entertainment on the go. Equipped with a powerful Intel Core processor, a crisp 15.6-inch display, and long-lasting battery life.",
			Reviews:       []domain.Review{},
		},
		{
			ID:            "p4",
			Name:          "Men's Casual Sneakers - Breathable Mesh - White",
			Brand:         "Generic",
			Price:         25.00,
			OriginalPrice: priceOf(45.00),
			Image:         "https://picsum.photos/seed/sneakers/400/400",
			Category:      "fashion",
			Rating:        4.2,
			ReviewCount:   312,
			Description:   "Comfortable and stylish sneakers for everyday wear. Lightweight mesh upper provides breathability while the padded collar offers extra comfort.",
			Reviews: []domain.Review{
				{ID: "r4", ReviewerName: "Mike Ross", Rating: 4, Comment: "Very comfortable for walking, slightly small fit.", Date: "2023-09-15"},
			},
		},
		{
			ID:            "p5",
			Name:          "Smart 4K UHD LED TV - 55 Inch - HDR10",
			Brand:         "Generic",
			Price:         399.00,
			OriginalPrice: priceOf(500.00),
			Image:         "https://picsum.photos/seed/tv/400/400",
			Category:      "electronics",
			Rating:        4.6,
			ReviewCount:   67,
			IsOfficial:    true,
			Description:   "Cinematic quality picture and smart features for your living room. 4K Ultra HD resolution, HDR10 support, and built-in streaming apps.",
			Reviews:       []domain.Review{},
		},
		{
			ID:          "p6",
			Name:        "Non-Stick Cookware Set - 12 Pieces - Granite Coating",
			Brand:       "Generic",
			Price:       85.00,
			Image:       "https://picsum.photos/seed/pots/400/400",
			Category:    "home",
			Rating:      4.4,
			ReviewCount: 18,
			Description: "Durable and easy-to-clean cookware for the modern kitchen. Includes various sized pots and pans with heat-resistant handles and tempered glass lids.",
			Reviews:     []domain.Review{},
		},
		{
			ID:            "p7",
			Name:          "Organic Shea Butter - 500g - Raw & Unrefined",
			Brand:         "SheaNature",
			Price:         12.00,
			OriginalPrice: priceOf(18.00),
			Image:         "https://picsum.photos/seed/shea/400/400",
			Category:      "beauty",
			Rating:        4.7,
			ReviewCount:   220,
			Description:   "Pure natural shea butter for skin and hair care. Rich in vitamins and fatty acids, perfect for moisturizing and soothing dry skin.",
			Reviews:       []domain.Review{},
		},
		{
			ID:          "p8",
			Name:        "Washing Machine - 7kg Front Load - Silver",
			Brand:       "Generic",
			Price:       310.00,
			Image:       "https://picsum.photos/seed/washing/400/400",
			Category:    "home",
			Rating:      4.3,
			ReviewCount: 25,
			IsOfficial:  true,
			Description: "Energy-efficient washing machine with multiple wash programs. 1200 RPM spin speed, child lock feature, and delay start function.",
			Reviews:     []domain.Review{},
		},
	}
}

func priceOf(v float64) *float64 {
	return &v
}
