package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindOutOfStock, KindOf(New(KindOutOfStock, "Tea is out of stock")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	// kind survives wrapping
	wrapped := fmt.Errorf("context: %w", New(KindNotFound, "Order not found"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestMessage_HidesInternalDetail(t *testing.T) {
	assert.Equal(t, "Order not found", Message(New(KindNotFound, "Order not found")))
	assert.Equal(t, "Internal Server Error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "Internal Server Error", Message(Wrap(KindInternal, "failed to load order", errors.New("pq: timeout"))))
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(KindInternal, "failed to load order", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load order: record not found", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindOutOfStock, http.StatusBadRequest},
		{KindOrderFinalized, http.StatusBadRequest},
		{KindOrderCancelled, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(New(tc.kind, "x")), string(tc.kind))
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
