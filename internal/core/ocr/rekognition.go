package ocr

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// DetectTextAPI rekognition.Client 的 DetectText
type DetectTextAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// RekognitionExtractor 透過 AWS Rekognition 讀取標籤
type RekognitionExtractor struct {
	client DetectTextAPI
	images ImageEncoder
}

// NewRekognitionExtractor 以預設憑證鏈建立 Rekognition 客戶端
func NewRekognitionExtractor(ctx context.Context, region string, images ImageEncoder) (*RekognitionExtractor, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return newRekognitionExtractor(rekognition.NewFromConfig(cfg), images), nil
}

func newRekognitionExtractor(client DetectTextAPI, images ImageEncoder) *RekognitionExtractor {
	return &RekognitionExtractor{client: client, images: images}
}

// Name provider 名稱
func (r *RekognitionExtractor) Name() string {
	return ProviderRekognition
}

// ExtractText 取出 LINE 類型的偵測結果，以換行串接
func (r *RekognitionExtractor) ExtractText(ctx context.Context, imageData string) (string, error) {
	data, err := r.images.JPEGBytes(ctx, imageData)
	if err != nil {
		return "", err
	}

	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: data},
	})
	if err != nil {
		return "", &Error{Provider: r.Name(), Err: err}
	}

	lines := make([]string, 0, len(out.TextDetections))
	for _, d := range out.TextDetections {
		if d.Type != types.TextTypesLine {
			continue
		}
		if line := strings.TrimSpace(aws.ToString(d.DetectedText)); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
