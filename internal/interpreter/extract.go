package interpreter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// between returns the trimmed text between the first start marker and the
// first end marker that follows it.
func between(text, start, end string) (string, bool) {
	i := strings.Index(text, start)
	if i == -1 {
		return "", false
	}
	i += len(start)

	j := strings.Index(text[i:], end)
	if j == -1 {
		return "", false
	}

	return strings.TrimSpace(text[i : i+j]), true
}

// betweenAny tries each marker pair in order and returns the first non-empty span.
func betweenAny(text string, pairs ...[2]string) string {
	for _, p := range pairs {
		if v, ok := between(text, p[0], p[1]); ok && v != "" {
			return v
		}
	}
	return ""
}

func parseAmount(text string) decimal.Decimal {
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "RWF", "")
	cleaned = strings.TrimSpace(cleaned)

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(n)
}

func amountBetween(text, start, end string) decimal.Decimal {
	v, ok := between(text, start, end)
	if !ok || v == "" {
		return decimal.Zero
	}
	return parseAmount(v)
}

func normalizeName(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func nameBetween(text, start, end string) string {
	v, _ := between(text, start, end)
	return normalizeName(v)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// idTemplates are tried in order; the first whose span is all digits wins.
var idTemplates = [][2]string{
	{"TxId: ", "."},
	{"*TxId:", "*"},
	{"Financial Transaction Id: ", "."},
	{"Transaction Id: ", "."},
}

func extractTransactionID(body string) *int64 {
	for _, t := range idTemplates {
		span, ok := between(body, t[0], t[1])
		if !ok || !isDigits(span) {
			continue
		}
		id, err := strconv.ParseInt(span, 10, 64)
		if err != nil {
			continue
		}
		return &id
	}
	return nil
}
