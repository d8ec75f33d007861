package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль в заголовке X-User-Role"
	msgAdminOnly     = "операция доступна только администратору"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// Auth достает пользователя из заголовков, выставленных шлюзом аутентификации.
// Без X-User-Role пользователь считается студентом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthenticated(w, msgMissingUserID)
			return
		}

		role := domain.RoleStudent
		if raw := r.Header.Get(HeaderUserRole); raw != "" {
			parsed, ok := domain.ParseRole(raw)
			if !ok {
				handlers.RespondUnauthenticated(w, msgInvalidRole)
				return
			}
			role = parsed
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только администраторов. Должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole возвращает роль пользователя из контекста
func GetRole(ctx context.Context) domain.Role {
	role, ok := ctx.Value(roleKey).(domain.Role)
	if !ok {
		return domain.RoleStudent
	}
	return role
}

// IsAdmin true, если у пользователя есть права администратора
func IsAdmin(ctx context.Context) bool {
	return GetRole(ctx).IsAdmin()
}

// WithUser кладет пользователя в контекст; используется в тестах обработчиков
func WithUser(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}
