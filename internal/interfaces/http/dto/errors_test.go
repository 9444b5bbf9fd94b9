package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENT_MODIFICATION", http.StatusConflict},
		{"INVALID_PAYMENT_AMOUNT", http.StatusUnprocessableEntity},
		{"ILLEGAL_STATUS_TRANSITION", http.StatusUnprocessableEntity},
		{"INVOICE_NOT_EDITABLE", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"BAD_REQUEST", http.StatusBadRequest},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		// domain codes without a dedicated mapping are business rejections
		{"NO_ITEMS", http.StatusUnprocessableEntity},
		{"INVALID_QUANTITY", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
