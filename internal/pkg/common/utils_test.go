package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, []string{"peanut", "milk"}, NormalizeList([]string{" Peanut ", "", "MILK", "peanut"}))
	assert.Empty(t, NormalizeList(nil))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "sk-o...7890", MaskSecret("sk-or-1234567890"))
}

func TestCustomErrorWrap(t *testing.T) {
	cause := errors.New("upstream 500")
	err := fmt.Errorf("ocr: %w", ErrOCRFailed.Wrap(cause))

	assert.True(t, errors.Is(err, ErrOCRFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrOCRDisabled))

	ce := AsCustomError(err)
	assert.Equal(t, http.StatusBadGateway, ce.Status)
	assert.Equal(t, "upstream 500", ce.Response(true).Details)
	assert.Empty(t, ce.Response(false).Details)

	plain := AsCustomError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}
