package middlewares

import (
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// TenantContext authenticates the bearer token and stores the tenant id it
// carries on the request context. Handlers never trust a client-supplied
// tenant id; the token claim is informational and the service row remains the
// authority for which tenant owns a booking.
func (m *Middlewares) TenantContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.Log.Warn("TenantContext missing bearer token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			m.Log.Warn("TenantContext invalid or expired token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		tenantID, _ := claims["tenant_id"].(string)
		if tenantID == "" {
			m.Log.Warn("TenantContext token has no tenant_id claim",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingTenantID(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_TENANT_ID_KEY, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
