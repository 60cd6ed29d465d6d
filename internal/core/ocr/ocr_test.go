package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiservice "ingredient-analyzer/internal/core/ai/service"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

type fakeImages struct {
	err error
}

func (f *fakeImages) ProcessImage(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "data:image/jpeg;base64,AAAA", nil
}

func (f *fakeImages) JPEGBytes(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte{0xff, 0xd8}, nil
}

type fakeAI struct {
	content string
	err     error
	req     aiservice.Request
}

func (f *fakeAI) ProcessRequest(_ context.Context, req aiservice.Request) (*aiservice.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &aiservice.Response{Content: f.content}, nil
}

type fakeDetector struct {
	out   *rekognition.DetectTextOutput
	err   error
	input *rekognition.DetectTextInput
}

func (f *fakeDetector) DetectText(_ context.Context, in *rekognition.DetectTextInput, _ ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error) {
	f.input = in
	return f.out, f.err
}

func TestVisionExtractor(t *testing.T) {
	ai := &fakeAI{content: "INGREDIENTS: SUGAR, SALT"}
	ext := NewVisionExtractor(ai, &fakeImages{}, "vision-model", 300)

	text, err := ext.ExtractText(context.Background(), "raw-base64")
	require.NoError(t, err)
	assert.Equal(t, "INGREDIENTS: SUGAR, SALT", text)
	assert.Equal(t, "ocr", ai.req.Purpose)
	assert.Equal(t, "vision-model", ai.req.Model)
	assert.Equal(t, VisionPrompt, ai.req.Prompt)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", ai.req.ImageData)
}

func TestVisionExtractorErrors(t *testing.T) {
	t.Run("model failure is an ocr error", func(t *testing.T) {
		ext := NewVisionExtractor(&fakeAI{err: errors.New("502")}, &fakeImages{}, "m", 10)
		_, err := ext.ExtractText(context.Background(), "x")
		var ocrErr *Error
		require.True(t, errors.As(err, &ocrErr))
		assert.Equal(t, ProviderOpenRouter, ocrErr.Provider)
	})

	t.Run("bad image passes through", func(t *testing.T) {
		ext := NewVisionExtractor(&fakeAI{}, &fakeImages{err: common.ErrInvalidImageFormat}, "m", 10)
		_, err := ext.ExtractText(context.Background(), "x")
		assert.True(t, errors.Is(err, common.ErrInvalidImageFormat))
		var ocrErr *Error
		assert.False(t, errors.As(err, &ocrErr))
	})
}

func TestRekognitionExtractorJoinsLines(t *testing.T) {
	det := &fakeDetector{out: &rekognition.DetectTextOutput{
		TextDetections: []types.TextDetection{
			{Type: types.TextTypesLine, DetectedText: aws.String("INGREDIENTS: WATER,")},
			{Type: types.TextTypesWord, DetectedText: aws.String("WATER")},
			{Type: types.TextTypesLine, DetectedText: aws.String("  ")},
			{Type: types.TextTypesLine, DetectedText: aws.String("SUGAR, SALT")},
		},
	}}
	ext := newRekognitionExtractor(det, &fakeImages{})

	text, err := ext.ExtractText(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "INGREDIENTS: WATER,\nSUGAR, SALT", text)
	assert.Equal(t, []byte{0xff, 0xd8}, det.input.Image.Bytes)
}

func TestRekognitionExtractorError(t *testing.T) {
	ext := newRekognitionExtractor(&fakeDetector{err: errors.New("throttled")}, &fakeImages{})
	_, err := ext.ExtractText(context.Background(), "x")
	var ocrErr *Error
	require.True(t, errors.As(err, &ocrErr))
	assert.Equal(t, ProviderRekognition, ocrErr.Provider)
	assert.Contains(t, err.Error(), "throttled")
}

func TestInstrumentTrimsText(t *testing.T) {
	ext := Instrument(NewVisionExtractor(&fakeAI{content: "\n  sugar, salt \n"}, &fakeImages{}, "m", 10))
	text, err := ext.ExtractText(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "sugar, salt", text)
	assert.Equal(t, ProviderOpenRouter, ext.Name())
	assert.Nil(t, Instrument(nil))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		enabled  bool
		wantNil  bool
		wantErr  bool
	}{
		{"none", ProviderNone, true, true, false},
		{"openrouter disabled", ProviderOpenRouter, false, true, false},
		{"openrouter enabled", ProviderOpenRouter, true, false, false},
		{"unknown provider", "tesseract", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				OpenRouter: config.OpenRouterConfig{Enabled: tt.enabled, VisionModel: "v"},
				OCR:        config.OCRConfig{Provider: tt.provider},
			}
			ext, err := New(context.Background(), cfg, &fakeAI{}, &fakeImages{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, ext)
			} else {
				require.NotNil(t, ext)
				assert.Equal(t, ProviderOpenRouter, ext.Name())
			}
		})
	}
}
