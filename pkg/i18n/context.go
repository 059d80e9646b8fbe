package i18n

import "context"

type localeKey struct{}

// WithLocale 把请求语言放进 context，供业务层格式化展示文本
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFrom 取不到时返回默认语言
func LocaleFrom(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey{}).(string); ok && Supported(locale) {
		return locale
	}
	return Default.DefaultLocale()
}
