// Package i18n 管理接口提示语与校验错误的多语言文本，目前支持 en 与 vi
package i18n

import (
	"embed"
	"fmt"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

//go:embed locales/*.yaml
var catalogFS embed.FS

type Bundle struct {
	uni *ut.UniversalTranslator

	mu            sync.RWMutex
	defaultLocale string
	placeholders  map[string]map[string]int
	validators    map[*validator.Validate]bool
}

// Default 全局多语言包，与 logger.Log 一样在包级共享
var Default = MustNew(LocaleEN)

func New(defaultLocale string) (*Bundle, error) {
	english := en.New()
	b := &Bundle{
		uni:           ut.New(english, english, vi.New()),
		defaultLocale: LocaleEN,
		placeholders:  make(map[string]map[string]int),
		validators:    make(map[*validator.Validate]bool),
	}
	b.SetDefaultLocale(defaultLocale)

	for _, locale := range []string{LocaleEN, LocaleVI} {
		if err := b.loadCatalog(locale); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func MustNew(defaultLocale string) *Bundle {
	b, err := New(defaultLocale)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Bundle) loadCatalog(locale string) error {
	data, err := catalogFS.ReadFile(path.Join("locales", locale+".yaml"))
	if err != nil {
		return fmt.Errorf("read catalogue %s: %w", locale, err)
	}

	messages := map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("parse catalogue %s: %w", locale, err)
	}

	trans, _ := b.uni.GetTranslator(locale)
	counts := make(map[string]int, len(messages))
	for key, text := range messages {
		if err := trans.Add(key, text, true); err != nil {
			return fmt.Errorf("catalogue %s key %s: %w", locale, key, err)
		}
		counts[key] = strings.Count(text, "{")
	}
	b.placeholders[trans.Locale()] = counts
	return nil
}

// SetDefaultLocale 不支持的语言忽略
func (b *Bundle) SetDefaultLocale(locale string) {
	if !Supported(locale) {
		return
	}
	b.mu.Lock()
	b.defaultLocale = locale
	b.mu.Unlock()
}

func (b *Bundle) DefaultLocale() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultLocale
}

func Supported(locale string) bool {
	return locale == LocaleEN || locale == LocaleVI
}

// Match 依次尝试 ?lang= 参数与 Accept-Language 头，都不命中时用默认语言
func (b *Bundle) Match(queryLang, acceptLanguage string) string {
	if l := strings.ToLower(strings.TrimSpace(queryLang)); Supported(l) {
		return l
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil {
			for _, tag := range tags {
				base, _ := tag.Base()
				if Supported(base.String()) {
					return base.String()
				}
			}
		}
	}
	return b.DefaultLocale()
}

func (b *Bundle) translator(locale string) ut.Translator {
	if trans, found := b.uni.GetTranslator(locale); found {
		return trans
	}
	trans, _ := b.uni.GetTranslator(b.DefaultLocale())
	return trans
}

// T 取翻译文本；未知 key 原样返回，便于发现遗漏
func (b *Bundle) T(locale, key string, params ...string) string {
	trans := b.translator(locale)

	// 参数不足时补空串，universal-translator 遇到缺参会越界
	b.mu.RLock()
	want := b.placeholders[trans.Locale()][key]
	b.mu.RUnlock()
	if len(params) < want {
		padded := make([]string, want)
		copy(padded, params)
		params = padded
	}

	text, err := trans.T(key, params...)
	if err != nil {
		return key
	}
	return text
}

// RegisterValidator 为校验器注册 en/vi 错误提示，并让字段名使用 json tag；同一个校验器只注册一次
func (b *Bundle) RegisterValidator(v *validator.Validate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.validators[v] {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	english, _ := b.uni.GetTranslator(LocaleEN)
	if err := en_translations.RegisterDefaultTranslations(v, english); err != nil {
		return err
	}
	vietnamese, _ := b.uni.GetTranslator(LocaleVI)
	if err := vi_translations.RegisterDefaultTranslations(v, vietnamese); err != nil {
		return err
	}
	b.validators[v] = true
	return nil
}

// TranslateValidation 把校验错误翻译成一句话；非校验错误返回 invalid_request 文本
func (b *Bundle) TranslateValidation(locale string, err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return b.T(locale, "invalid_request")
	}

	translated := errs.Translate(b.translator(locale))
	msgs := make([]string, 0, len(translated))
	for _, msg := range translated {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func T(locale, key string, params ...string) string {
	return Default.T(locale, key, params...)
}
