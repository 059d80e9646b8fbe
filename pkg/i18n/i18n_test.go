package i18n

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	b := MustNew(LocaleEN)

	cases := []struct {
		locale  string
		seconds float64
		want    string
	}{
		{LocaleEN, 0, "0 sec"},
		{LocaleEN, 45, "45 sec"},
		{LocaleEN, 60, "1 min"},
		{LocaleEN, 125, "2 min 5 sec"},
		{LocaleEN, 3600, "1 hr"},
		{LocaleEN, 3725, "1 hr 2 min"},
		{LocaleEN, 3605, "1 hr"},
		{LocaleVI, 45, "45 giây"},
		{LocaleVI, 125, "2 phút 5 giây"},
		{LocaleVI, 7380, "2 giờ 3 phút"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, b.FormatDuration(c.locale, c.seconds), "%s %v", c.locale, c.seconds)
	}
}

func TestFormatPages(t *testing.T) {
	b := MustNew(LocaleEN)
	assert.Equal(t, "12 pages", b.FormatPages(LocaleEN, 12))
	assert.Equal(t, "4 trang", b.FormatPages(LocaleVI, 4))
}

func TestMatch(t *testing.T) {
	b := MustNew(LocaleVI)

	assert.Equal(t, LocaleEN, b.Match("en", "vi-VN"))
	assert.Equal(t, LocaleVI, b.Match("", "vi-VN,vi;q=0.9,en;q=0.8"))
	assert.Equal(t, LocaleEN, b.Match("fr", "fr-FR,en-US;q=0.7"))
	assert.Equal(t, LocaleVI, b.Match("", ""))
	assert.Equal(t, LocaleVI, b.Match("", "de-DE"))
}

func TestUnknownKey(t *testing.T) {
	b := MustNew(LocaleEN)
	assert.Equal(t, "no.such.key", b.T(LocaleEN, "no.such.key"))
	assert.Equal(t, "Note not found", b.T("fr", "note_not_found"))
	assert.Equal(t, "Không tìm thấy ghi chú", b.T(LocaleVI, "note_not_found"))
}

func TestTranslateValidation(t *testing.T) {
	b := MustNew(LocaleEN)
	v := validator.New()
	require.NoError(t, b.RegisterValidator(v))
	// 重复注册不报错
	require.NoError(t, b.RegisterValidator(v))

	type payload struct {
		Content string `json:"content" validate:"required"`
	}
	err := v.Struct(payload{})
	require.Error(t, err)

	assert.Equal(t, "content is a required field", b.TranslateValidation(LocaleEN, err))
	assert.NotEqual(t, "content is a required field", b.TranslateValidation(LocaleVI, err))
}
