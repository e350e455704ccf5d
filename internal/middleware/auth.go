package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthCookieName = "auth_token"
	tokenTTL       = 24 * time.Hour
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	authTimeKey
)

// Claims - содержимое токена: пользователь и момент входа.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64 `json:"user_id"`
	AuthTime int64 `json:"auth_time"`
}

// BuildToken подписывает токен для userID с моментом входа authTime.
func BuildToken(userID int64, authTime time.Time, secret string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(authTime),
			ExpiresAt: jwt.NewNumericDate(authTime.Add(tokenTTL)),
		},
		UserID:   userID,
		AuthTime: authTime.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetLoginCookie выпускает свежий токен (момент входа = сейчас) и кладёт его в cookie.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	tokenString, err := BuildToken(userID, time.Now(), secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(tokenTTL),
	})
	return nil
}

// ClearLoginCookie удаляет cookie авторизации.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// WithAuth кладёт user_id и auth_time в контекст, если cookie валидна.
// Без cookie запрос идёт дальше анонимным, решение принимает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseToken(cookie.Value, secret)
			if err != nil {
				sugar.Debugw("invalid auth token", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, authTimeKey, time.Unix(claims.AuthTime, 0))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отвечает 401, если WithAuth не нашёл пользователя.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"unauthenticated","error":"not authenticated"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id != 0
}

func GetAuthTimeFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(authTimeKey).(time.Time)
	return t, ok
}
