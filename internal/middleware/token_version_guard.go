package middleware

import (
	"net/http"

	"genstore/internal/repository"

	"github.com/labstack/echo/v4"
)

// TokenVersionGuard はDBの最新ユーザーと照合するガード。
// tvが一致しないトークンは失効扱い（強制ログアウト後の古いトークン対策）、
// あわせてACTIVEでないユーザーも締め出す。AuthJWTの後ろに置くこと
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, okID := c.Get(CtxUserIDKey).(int64)
			tv, okTV := c.Get(CtxTokenVersionKey).(int)
			if !okID || userID <= 0 || !okTV || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//BANや停止中は認証済みでも拒否
			if !user.Status.CanAccess() {
				return c.JSON(http.StatusForbidden, errorJSON("account is not active"))
			}

			return next(c)
		}
	}
}
