package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-ledger/pkg/auth"
	md "github.com/Astemirdum/library-ledger/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	valid, err := tokens.Issue(3, "dave")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "ok",
			header:       "Bearer " + valid,
			expectedCode: http.StatusOK,
			expectedBody: "dave",
		},
		{
			name:         "no header",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"No Authorization Header"}`,
		},
		{
			name:         "malformed",
			header:       "InvalidFormat token",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Invalid Authorization Header"}`,
		},
		{
			name:         "invalid token",
			header:       "Bearer invalid_token_here",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Unauthorized"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/me", func(c echo.Context) error {
				name, err := auth.GetUserName(c.Request().Context())
				if err != nil {
					return err
				}
				return c.String(http.StatusOK, name)
			}, md.JwtAuthentication(tokens))

			r := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tt.header != "" {
				r.Header.Set(md.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
