package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createItemPayload struct {
	Description string `json:"description" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required,gte=1"`
	Method      string `json:"method" binding:"omitempty,oneof=CASH CARD INSURANCE"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload createItemPayload
	return c.ShouldBindJSON(&payload)
}

func TestFormatValidationError(t *testing.T) {
	SetupValidator()

	t.Run("reports json field names", func(t *testing.T) {
		err := bindPayload(t, `{"quantity": -1}`)
		require.Error(t, err)

		msg := FormatValidationError(err)
		assert.Contains(t, msg, "description: this field is required")
		assert.Contains(t, msg, "quantity: must be greater than or equal to 1")
	})

	t.Run("oneof lists allowed values", func(t *testing.T) {
		err := bindPayload(t, `{"description": "Consultation", "quantity": 1, "method": "BARTER"}`)
		require.Error(t, err)

		msg := FormatValidationError(err)
		assert.Contains(t, msg, "method: must be one of: CASH CARD INSURANCE")
	})

	t.Run("non-validator errors pass through", func(t *testing.T) {
		err := errors.New("unexpected EOF")
		assert.Equal(t, "unexpected EOF", FormatValidationError(err))
	})
}
