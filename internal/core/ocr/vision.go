package ocr

import (
	"context"

	aiservice "ingredient-analyzer/internal/core/ai/service"
)

// VisionPrompt 視覺模型讀取標籤的指示
const VisionPrompt = "Read and extract all text from this food ingredient label. Focus on the ingredients list. Return ONLY the text you see, formatted exactly as it appears on the label."

// VisionExtractor 透過 OpenRouter 視覺模型讀取標籤
type VisionExtractor struct {
	ai        AIService
	images    ImageEncoder
	model     string
	maxTokens int
}

// NewVisionExtractor 創建視覺模型辨識
func NewVisionExtractor(ai AIService, images ImageEncoder, model string, maxTokens int) *VisionExtractor {
	return &VisionExtractor{
		ai:        ai,
		images:    images,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Name provider 名稱
func (v *VisionExtractor) Name() string {
	return ProviderOpenRouter
}

// ExtractText 讀取標籤文字
func (v *VisionExtractor) ExtractText(ctx context.Context, imageData string) (string, error) {
	dataURI, err := v.images.ProcessImage(ctx, imageData)
	if err != nil {
		return "", err
	}

	resp, err := v.ai.ProcessRequest(ctx, aiservice.Request{
		Purpose:   "ocr",
		Model:     v.model,
		Prompt:    VisionPrompt,
		ImageData: dataURI,
		MaxTokens: v.maxTokens,
	})
	if err != nil {
		return "", &Error{Provider: v.Name(), Err: err}
	}
	return resp.Content, nil
}
