// Package i18n resolves UI strings from embedded per-language dictionaries.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLang = "en"

var Supported = []string{"en", "fr", "ar"}

var (
	once         sync.Once
	translations map[string]map[string]string
)

func loadOnce() {
	once.Do(func() {
		translations = make(map[string]map[string]string, len(Supported))
		for _, lang := range Supported {
			data, err := localeFS.ReadFile("locales/" + lang + ".json")
			if err != nil {
				// Embedded files; a miss here is a packaging bug.
				panic(fmt.Sprintf("i18n: missing locale %s: %v", lang, err))
			}
			dict := map[string]string{}
			if err := json.Unmarshal(data, &dict); err != nil {
				panic(fmt.Sprintf("i18n: bad locale %s: %v", lang, err))
			}
			translations[lang] = dict
		}
	})
}

func IsSupported(lang string) bool {
	for _, l := range Supported {
		if l == lang {
			return true
		}
	}
	return false
}

// T resolves key in the requested language, falling back to the default
// language's dictionary and finally to the raw key. Every {{name}} occurrence
// in the resolved string is replaced with the stringified param value.
func T(lang, key string, params map[string]any) string {
	loadOnce()

	text, ok := translations[lang][key]
	if !ok && lang != DefaultLang {
		text, ok = translations[DefaultLang][key]
	}
	if !ok {
		text = key
	}
	for name, v := range params {
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprint(v))
	}
	return text
}

// ResolveLang picks the active language: the persisted choice first, then the
// browser's Accept-Language tags matched against the supported set, then the
// default.
func ResolveLang(persisted, acceptLanguage string) string {
	if IsSupported(persisted) {
		return persisted
	}
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(strings.TrimSpace(tag))
		if i := strings.IndexByte(tag, '-'); i >= 0 {
			tag = tag[:i]
		}
		if IsSupported(tag) {
			return tag
		}
	}
	return DefaultLang
}
