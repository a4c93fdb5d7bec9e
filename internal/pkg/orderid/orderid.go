// Package orderid приводит внутренние идентификаторы заказов к виду, который показывается пользователю.
package orderid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	prefix    = "AA"
	maxLength = 6
)

// Format никогда не возвращает ошибку.
//
// Десятичные идентификаторы дополняются нулями до 6 цифр ("123" -> "AA000123"),
// более длинные числа не обрезаются. Остальные идентификаторы (uuid и т.п.)
// очищаются от дефисов, переводятся в верхний регистр и обрезаются до 6 символов
// без дополнения ("abc" -> "AAABC").
func Format(raw string) string {
	if isDigits(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return fmt.Sprintf("%s%06d", prefix, n)
		}
	}

	cleaned := strings.ToUpper(strings.ReplaceAll(raw, "-", ""))
	if len(cleaned) > maxLength {
		cleaned = truncate(cleaned, maxLength)
	}
	return prefix + cleaned
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// truncate режет по рунам, чтобы не порвать многобайтовый символ.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
