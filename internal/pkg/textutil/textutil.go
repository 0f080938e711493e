// Package textutil содержит операции над русским текстом, нужные при верстке:
// перенос по словам с ограничением длины строки и склонение в предложный падеж.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitString разбивает строку на строки длиной не более limit символов, перенося по пробелам.
// Слово длиннее limit занимает отдельную строку целиком. Пустая строка дает пустой срез
func SplitString(s string, limit int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{}
	}
	if limit <= 0 {
		return []string{strings.Join(words, " ")}
	}

	lines := make([]string, 0, 2)
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > limit {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

// RuneLen длина строки в символах
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Capitalize переводит первую букву в верхний регистр
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var prepositionalEndings = []struct {
	suffix      string
	replacement string
}{
	{"ый", "ом"},
	{"ий", "ем"},
	{"ой", "ом"},
	{"ое", "ом"},
	{"ее", "ем"},
	{"ая", "ой"},
	{"яя", "ей"},
	{"ие", "ии"},
	{"ия", "ии"},
	{"ь", "е"},
	{"а", "е"},
	{"я", "е"},
	{"о", "е"},
	{"й", "е"},
}

// ToPrepositional ставит слово в предложный падеж: "комплекс" -> "комплексе", "торговый" -> "торговом".
// Для слов с дефисом склоняется последняя часть, латиница и числа не изменяются
func ToPrepositional(word string) string {
	if word == "" {
		return word
	}
	if i := strings.LastIndex(word, "-"); i >= 0 && i < len(word)-1 {
		return word[:i+1] + ToPrepositional(word[i+1:])
	}

	last, _ := utf8.DecodeLastRuneInString(word)
	if !unicode.Is(unicode.Cyrillic, last) {
		return word
	}

	lower := strings.ToLower(word)
	for _, e := range prepositionalEndings {
		if strings.HasSuffix(lower, e.suffix) && utf8.RuneCountInString(lower) > utf8.RuneCountInString(e.suffix) {
			return word[:len(word)-len(e.suffix)] + e.replacement
		}
	}
	if strings.ContainsRune("бвгджзклмнпрстфхцчшщ", unicode.ToLower(last)) {
		return word + "е"
	}
	return word
}

// PrepositionalPhrase переводит фразу в нижний регистр и склоняет каждое слово
func PrepositionalPhrase(phrase string) string {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = ToPrepositional(w)
	}
	return strings.Join(words, " ")
}
