package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"genstore/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

// トークンから取り出す認証情報
type authClaims struct {
	UserID       int64
	Role         string
	TokenVersion int
}

// AuthJWT はAuthorization: Bearerのアクセストークンを検証して
// user_id / user_role / token_version をcontextに載せる。
// HS256以外の署名は受け付けない
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, err := verifyToken(raw, cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}

func bearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

func verifyToken(raw string, secret string) (authClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return authClaims{}, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authClaims{}, errors.New("invalid claims")
	}

	userID, err := claimInt64(mc["sub"])
	if err != nil || userID <= 0 {
		return authClaims{}, errors.New("invalid sub")
	}

	role, ok := mc["role"].(string)
	if !ok || role == "" {
		return authClaims{}, errors.New("invalid role")
	}

	tv, err := claimInt64(mc["tv"])
	if err != nil || tv < 0 {
		return authClaims{}, errors.New("invalid tv")
	}

	return authClaims{UserID: userID, Role: role, TokenVersion: int(tv)}, nil
}

// JSON経由の数値はfloat64で来るので両対応にしておく
func claimInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid number claim")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
