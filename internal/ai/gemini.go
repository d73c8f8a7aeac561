// Package ai Google Gemini 推荐服务实现。
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiRecommender 基于 Google Gemini 的 Recommender 实现。
type GeminiRecommender struct {
	client *genai.Client
	model  string
}

// NewGeminiRecommender 创建 Gemini 推荐服务实例。
func NewGeminiRecommender(ctx context.Context, apiKey, model string) (*GeminiRecommender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-3-flash-preview"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiRecommender{
		client: client,
		model:  model,
	}, nil
}

// recommendationEnvelope 结构化输出的响应载体。
type recommendationEnvelope struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// recommendationSchema 约束模型输出为 {recommendations:[{productId, reason}]}。
var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"productId": {Type: genai.TypeString},
					"reason":    {Type: genai.TypeString},
				},
				Required: []string{"productId", "reason"},
			},
		},
	},
	Required: []string{"recommendations"},
}

// Recommend 请求模型从目录摘要中挑选与查询最相关的商品。
func (g *GeminiRecommender) Recommend(ctx context.Context, query string, products []ProductSummary) ([]Recommendation, error) {
	summary, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product summaries: %w", err)
	}

	prompt := fmt.Sprintf(`User is searching for: %q.
Here are the available products in our database: %s.
Based on the user's query, recommend the top 3 product IDs that are most relevant.
Also provide a short explanation why.`, query, summary)

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recommendationSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini recommend failed: %w", err)
	}

	var envelope recommendationEnvelope
	if err := json.Unmarshal([]byte(result.Text()), &envelope); err != nil {
		return nil, fmt.Errorf("unexpected gemini response: %w", err)
	}
	return envelope.Recommendations, nil
}

// Chat 以购物助手身份回复用户消息。
func (g *GeminiRecommender) Chat(ctx context.Context, message, context string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful e-commerce shopping assistant for ONOS.
Context: %s.
User Message: %s.
Provide a helpful, concise response.`, context, message)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}
