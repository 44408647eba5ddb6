package kosapi

import "encoding/json"

// tokenExtractor — одна стратегия извлечения токена из тела ответа.
type tokenExtractor func(payload map[string]json.RawMessage) string

// Порядок стратегий фиксирован и является наблюдаемым контрактом:
// token, затем access_token, затем data.token. Первая непустая побеждает.
var tokenExtractors = []tokenExtractor{
	func(p map[string]json.RawMessage) string { return stringField(p, "token") },
	func(p map[string]json.RawMessage) string { return stringField(p, "access_token") },
	func(p map[string]json.RawMessage) string {
		var nested map[string]json.RawMessage
		if raw, ok := p["data"]; ok && json.Unmarshal(raw, &nested) == nil {
			return stringField(nested, "token")
		}
		return ""
	},
}

// ExtractToken применяет стратегии по порядку к сырому телу ответа.
// Возвращает пустую строку, если токен не найден ни под одним ключом.
func ExtractToken(raw []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	for _, extract := range tokenExtractors {
		if token := extract(payload); token != "" {
			return token
		}
	}
	return ""
}

func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
