package shellint

import (
	"strings"

	"golang.org/x/text/language"
)

// Menu labels by language.
const (
	LabelEnglish = "Open in Project & Node Manager"
	LabelChinese = "在前端项目 & Node 管理器中打开"
)

// Label returns the context-menu label for locale. Any tag whose base
// language is Chinese gets the Chinese label; everything else, including
// unparsable input, gets English.
func Label(locale string) string {
	if IsChinese(locale) {
		return LabelChinese
	}
	return LabelEnglish
}

// IsChinese reports whether locale is a BCP 47 tag (or a POSIX-style
// zh_CN) with base language zh.
func IsChinese(locale string) bool {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return false
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base.String() == "zh"
}
