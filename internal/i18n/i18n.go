package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed locales/*.json
var embedded embed.FS

// Language представляет поддерживаемый язык
type Language string

const (
	LangEnglish Language = "en"
	LangRussian Language = "ru"
	DefaultLang Language = LangEnglish
)

var languages = []Language{LangEnglish, LangRussian}

// Catalog хранит переводы для всех языков
type Catalog struct {
	data map[Language]map[string]string
}

// Default returns the catalog built into the binary
func Default() *Catalog {
	c, err := Load(embedded, "locales")
	if err != nil {
		// встроенные файлы проверяются тестами
		panic(err)
	}
	return c
}

// Load загружает переводы из dir/<lang>.json
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{data: make(map[Language]map[string]string)}
	for _, lang := range languages {
		filePath := path.Join(dir, string(lang)+".json")
		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла локализации %s: %w", filePath, err)
		}

		var langData map[string]string
		if err := json.Unmarshal(data, &langData); err != nil {
			return nil, fmt.Errorf("ошибка парсинга файла локализации %s: %w", filePath, err)
		}
		c.data[lang] = langData
	}
	return c, nil
}

// T возвращает перевод для указанного ключа и языка
func (c *Catalog) T(key string, lang Language) string {
	if text, ok := c.data[lang][key]; ok {
		return text
	}
	// Fallback на английский
	if text, ok := c.data[DefaultLang][key]; ok {
		return text
	}
	return key
}

// Tf возвращает форматированный перевод
func (c *Catalog) Tf(key string, lang Language, args ...interface{}) string {
	template := c.T(key, lang)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// Has reports whether key is defined for the default language
func (c *Catalog) Has(key string) bool {
	_, ok := c.data[DefaultLang][key]
	return ok
}

// Keys returns the keys defined for lang
func (c *Catalog) Keys(lang Language) []string {
	keys := make([]string, 0, len(c.data[lang]))
	for k := range c.data[lang] {
		keys = append(keys, k)
	}
	return keys
}

// ParseLanguage преобразует строку в Language
func ParseLanguage(lang string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(lang))) {
	case LangRussian:
		return LangRussian
	default:
		return LangEnglish
	}
}
