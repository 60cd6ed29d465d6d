package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/core/ocr"
	"ingredient-analyzer/internal/core/profile"
	"ingredient-analyzer/internal/pkg/common"
)

type fakeStore struct {
	allergies []string
	err       error
	gets      int
}

func (s *fakeStore) Get(_ context.Context, _ string) ([]string, error) {
	s.gets++
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.allergies...), nil
}

func (s *fakeStore) Put(_ context.Context, _ string, allergies []string) ([]string, error) {
	return allergies, nil
}

func (s *fakeStore) Close() error { return nil }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func TestResolveAllergies(t *testing.T) {
	storeErr := errors.New("db down")
	tests := []struct {
		name      string
		store     *fakeStore
		userID    string
		allergies []string
		want      []string
		wantErr   error
		wantGets  int
	}{
		{"no user id", &fakeStore{allergies: []string{"milk"}}, "", []string{"soy"}, []string{"soy"}, nil, 0},
		{"stored merged with request", &fakeStore{allergies: []string{"milk"}}, "u1", []string{"soy"}, []string{"milk", "soy"}, nil, 1},
		{"profile not found", &fakeStore{err: common.ErrProfileNotFound}, "u1", []string{"soy"}, []string{"soy"}, nil, 1},
		{"wrapped not found", &fakeStore{err: common.ErrProfileNotFound.Wrap(errors.New("u1"))}, "u1", nil, nil, nil, 1},
		{"store failure", &fakeStore{err: storeErr}, "u1", []string{"soy"}, nil, storeErr, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, nil, tt.store, 0)
			got, err := h.resolveAllergies(context.Background(), tt.userID, tt.allergies)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantGets, tt.store.gets)
		})
	}
}

func TestResolveAllergiesWithoutStore(t *testing.T) {
	h := NewHandler(nil, nil, nil, 0)
	got, err := h.resolveAllergies(context.Background(), "u1", []string{"soy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"soy"}, got)
}

func newEngine(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/analyze/text", h.AnalyzeText)
	r.POST("/analyze/image", h.AnalyzeImage)
	r.POST("/extract", h.Extract)
	return r
}

func post(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testAnalyzer() *ingredient.Analyzer {
	return ingredient.NewAnalyzer(ingredient.NewClassifier(ingredient.DefaultTable, nil))
}

func TestAnalyzeTextUsesStoredAllergies(t *testing.T) {
	h := NewHandler(testAnalyzer(), nil, &fakeStore{allergies: []string{"milk"}}, 1024)
	w := post(newEngine(h), "/analyze/text", TextRequest{Text: "Ingredients: milk, honey", UserID: "u1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Allergen)
	assert.Equal(t, ingredient.CategoryHarmful, resp.Results[0].Category)
	assert.Equal(t, "Contains an ingredient you are allergic to.", resp.Overall.Reason)
}

func TestAnalyzeTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		store  profile.Store
		body   TextRequest
		status int
		code   string
	}{
		{"text too long", &fakeStore{}, TextRequest{Text: "Ingredients: a very long label text"}, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"store failure", &fakeStore{err: errors.New("db down")}, TextRequest{Text: "salt", UserID: "u1"}, http.StatusInternalServerError, common.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(testAnalyzer(), nil, tt.store, 16)
			w := post(newEngine(h), "/analyze/text", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var errResp common.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Equal(t, tt.code, errResp.Code)
		})
	}
}

func TestAnalyzeImageMapsErrors(t *testing.T) {
	tests := []struct {
		name      string
		extractor ocr.Extractor
		status    int
		code      string
	}{
		{"ocr disabled", nil, http.StatusServiceUnavailable, common.ErrOCRDisabled.Code},
		{"provider failure", &fakeExtractor{err: &ocr.Error{Provider: "fake", Err: errors.New("timeout")}}, http.StatusBadGateway, common.ErrOCRFailed.Code},
		{"bad image", &fakeExtractor{err: common.ErrInvalidImageFormat}, http.StatusBadRequest, common.ErrInvalidImageFormat.Code},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(testAnalyzer(), tt.extractor, &fakeStore{}, 1024)
			w := post(newEngine(h), "/analyze/image", ImageRequest{Image: "aGVsbG8="})
			assert.Equal(t, tt.status, w.Code)

			var errResp common.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Equal(t, tt.code, errResp.Code)
		})
	}
}

func TestAnalyzeImageReturnsExtractedText(t *testing.T) {
	h := NewHandler(testAnalyzer(), &fakeExtractor{text: "Ingredients: honey"}, &fakeStore{}, 1024)
	w := post(newEngine(h), "/analyze/image", ImageRequest{Image: "aGVsbG8="})
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ingredients: honey", resp.ExtractedText)
	assert.Equal(t, []string{"honey"}, resp.Ingredients)
}

func TestExtractHandler(t *testing.T) {
	h := NewHandler(testAnalyzer(), nil, nil, 1024)
	w := post(newEngine(h), "/extract", ExtractRequest{Text: "Contains: water, salt"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"water", "salt"}, resp.Ingredients)
	assert.Equal(t, "contains:", resp.Marker)
	assert.Equal(t, ingredient.ConfidenceHigh, resp.Confidence)
}
