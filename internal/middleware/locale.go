package middleware

import (
	"edunity_backend/internal/util"
	"edunity_backend/pkg/i18n"

	"github.com/gin-gonic/gin"
)

// LocaleMiddleware 语言优先级：?lang= > Accept-Language > 默认语言
func LocaleMiddleware(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := bundle.Match(c.Query("lang"), c.GetHeader("Accept-Language"))

		c.Set(util.ContextLocaleKey, locale)
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}
