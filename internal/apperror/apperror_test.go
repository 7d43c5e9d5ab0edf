package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedChain(t *testing.T) {
	err := fmt.Errorf("decide claim: %w", Conflict("claim already decided"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestGateway_KeepsProviderMessage(t *testing.T) {
	cause := errors.New("status 400")
	err := Gateway("order_amount should be greater than 1", cause)

	assert.Equal(t, "order_amount should be greater than 1", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindConfiguration: http.StatusServiceUnavailable,
		KindAuthorization: http.StatusUnauthorized,
		KindForbidden:     http.StatusForbidden,
		KindValidation:    http.StatusBadRequest,
		KindGateway:       http.StatusBadGateway,
		KindConflict:      http.StatusConflict,
		KindNotFound:      http.StatusNotFound,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind), kind)
	}
}
