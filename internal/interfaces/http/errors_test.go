package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appDevolviendo construye una app mínima cuyo único handler responde con el
// error indicado pasado por mapDomainError.
func appDevolviendo(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return mapDomainError(c, err)
	})
	return app
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"categoría en uso", domain.ErrCategoryInUse, fiber.StatusConflict, "CATEGORY_IN_USE"},
		{"categoría inexistente", domain.ErrCategoryNotExists, fiber.StatusConflict, "CATEGORY_NOT_EXISTS"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Los errores llegan envueltos desde los casos de uso; el mapeo
			// debe resolverse por errors.Is, no por igualdad.
			wrapped := fmt.Errorf("operación: %w", tc.err)
			app := appDevolviendo(wrapped)

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Code)
			assert.Contains(t, body.Message, tc.err.Error(), "el mensaje de dominio viaja al caller")
		})
	}
}

func TestMapDomainError_InfraestructuraEsOpaca(t *testing.T) {
	app := appDevolviendo(fmt.Errorf("query productos: connection refused host=10.0.0.5"))

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "10.0.0.5", "los detalles del almacén no se filtran")

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno", body.Message)
}
