package variables

import "strings"

// FormatKey wraps a variable key in braces. Already-wrapped input is
// normalized first, so formatting is idempotent.
func FormatKey(key string) string {
	return "{" + ExtractKey(key) + "}"
}

// ExtractKey strips the brace wrapping from a formatted variable token.
// Extra layers of braces are stripped too, so extraction is idempotent;
// unwrapped input passes through unchanged.
func ExtractKey(token string) string {
	token = strings.TrimSpace(token)

	for strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}") && len(token) >= 2 {
		token = strings.TrimSpace(token[1 : len(token)-1])
	}

	return token
}
