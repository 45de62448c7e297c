package submit

import (
	"encoding/json"
	"strings"
)

// relayErrorBody matches the error document returned by Formspree-style
// relays: {"error": "...", "errors": [{"field": "email", "message": "..."}]}.
type relayErrorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"errors"`
}

func decodeRelayErrors(data []byte) (map[string][]string, []string) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var body relayErrorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, nil
	}

	var (
		fields map[string][]string
		form   []string
	)
	if msg := strings.TrimSpace(body.Error); msg != "" {
		form = append(form, msg)
	}
	for _, entry := range body.Errors {
		msg := strings.TrimSpace(entry.Message)
		if msg == "" {
			msg = strings.TrimSpace(entry.Code)
		}
		if msg == "" {
			continue
		}
		field := strings.TrimSpace(entry.Field)
		if field == "" {
			form = append(form, msg)
			continue
		}
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[field] = append(fields[field], msg)
	}
	return fields, form
}
