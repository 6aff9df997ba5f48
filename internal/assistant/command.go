package assistant

import "strings"

// CommandMarker начинает сообщение, адресованное ассистенту
const CommandMarker = "@gpt"

// ExtractCommand возвращает ok=false, если сообщение не команда.
// Вопрос берётся из копии в верхнем регистре, поэтому исходный регистр теряется.
func ExtractCommand(text string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	marker := strings.ToUpper(CommandMarker)
	if !strings.HasPrefix(upper, marker) {
		return "", false
	}
	idx := strings.Index(upper, marker)
	return strings.TrimSpace(upper[idx+len(marker):]), true
}
