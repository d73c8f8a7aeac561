// Package ai 定义推荐/聊天助手的外部服务边界。
package ai

import (
	"context"
)

// ProductSummary 传给外部文本生成服务的商品摘要。
type ProductSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
}

// Recommendation 外部服务返回的单条推荐。
type Recommendation struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// Recommender 推荐/聊天服务接口。
// 两个方法都可能因网络或服务故障返回错误；调用方负责降级
// （空推荐列表 / 固定兜底回复），不得向上传播致命错误。
type Recommender interface {
	// Recommend 基于自由文本查询与目录摘要返回带理由的推荐子集
	Recommend(ctx context.Context, query string, products []ProductSummary) ([]Recommendation, error)

	// Chat 基于消息与上下文返回自由文本回复
	Chat(ctx context.Context, message, context string) (string, error)
}
