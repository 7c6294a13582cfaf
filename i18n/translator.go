// Package i18n renders human messages for validation issue codes.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes.
// data carries optional parameters to embed in the message (for example
// "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "required":
			msg = "必須フィールドが不足しています"
		case "unknown_key":
			msg = "未知のキーです"
		case "overflow":
			msg = "値が範囲外です"
		case "null":
			msg = "null は許可されていません"
		case "model_type":
			msg = "オブジェクトである必要があります"
		}
		if msg != "" && data["expected"] != "" {
			msg += "（期待: " + data["expected"] + "）"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "required":
			msg = "field required"
		case "unknown_key":
			msg = "extra inputs are not permitted"
		case "overflow":
			msg = "number out of range"
		case "null":
			msg = "null is not allowed"
		case "model_type":
			msg = "input should be an object"
		}
		if msg != "" && data["expected"] != "" {
			msg += ", expected " + data["expected"]
		}
	}
	if msg == "" {
		return code
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation; nil restores the
// English dictionary.
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
