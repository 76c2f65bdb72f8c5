package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides named values substituted into {placeholders} (for example
// "key" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"invalid_type":  "unable to interpret DOM value as {expected}",
		"required":      "unable to find key with name '{key}'",
		"coercion":      "unable to parse into value of type '{type}'",
		"invalid_enum":  "unable to get integer from DOM value to parse enum",
		"parse_error":   "error in parsing {format} content: {detail}",
		"io":            "cannot open file at '{path}' for {format} {op}",
		"duplicate_key": "key '{key}' duplicated",
		"depth":         "max depth exceeded",
	},
	"ja": {
		"invalid_type":  "DOM 値を {expected} として解釈できません",
		"required":      "キー '{key}' が見つかりません",
		"coercion":      "型 '{type}' の値に変換できません",
		"invalid_enum":  "列挙型の解析に整数の DOM 値が必要です",
		"parse_error":   "{format} の解析エラー: {detail}",
		"io":            "'{path}' を開けません ({format} {op})",
		"duplicate_key": "キー '{key}' が重複しています",
		"depth":         "最大深さを超えました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalog[t.lang][code]
	if !ok {
		tmpl, ok = catalog["en"][code]
	}
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {name} placeholders with data values. Unknown placeholders
// are left as written.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
