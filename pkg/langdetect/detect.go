// Package langdetect provides language detection for repair targets.
// It uses go-enry to decide whether a file is actually JavaScript or
// TypeScript source, which matters for ambiguous extensions (a .ts file
// may be an MPEG transport stream, not TypeScript).
package langdetect

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// Script language names as go-enry reports them.
const (
	langJavaScript = "JavaScript"
	langTypeScript = "TypeScript"
	langTSX        = "TSX"
	langJSX        = "JSX"
)

// scriptFamily is the set of languages the checker can process.
//
//nolint:gochecknoglobals // Package-level lookup table is intentional
var scriptFamily = map[string]struct{}{
	langJavaScript: {},
	langTypeScript: {},
	langTSX:        {},
	langJSX:        {},
}

// Detect returns the detected language name for a file, or "" when
// detection fails.
func Detect(path string, content []byte) string {
	// Shebang is the most reliable signal when present.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	lang := enry.GetLanguage(filepath.Base(path), content)
	if lang == enry.OtherLanguage {
		return ""
	}
	return lang
}

// IsScriptSource reports whether the file is JavaScript/TypeScript family
// source code.
func IsScriptSource(path string, content []byte) bool {
	lang := Detect(path, content)
	if lang == "" {
		return false
	}
	_, ok := scriptFamily[lang]
	return ok
}

// IsAmbiguousExtension reports whether the extension alone cannot settle
// the language and content detection is warranted.
func IsAmbiguousExtension(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return true
	}
	langs := enry.GetLanguagesByExtension(path, nil, nil)
	return len(langs) > 1
}
