package pmsapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseErrorMessage extracts the server message from an error body. The backend
// answers {"detail": "..."} or, for request validation, {"detail": [{"loc": [...], "msg": "..."}]}.
func parseErrorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if len(parsed.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(parsed.Detail, &detail); err == nil {
			return detail
		}

		var issues []validationIssue
		if err := json.Unmarshal(parsed.Detail, &issues); err == nil && len(issues) > 0 {
			messages := make([]string, 0, len(issues))

			for _, issue := range issues {
				if field := issueField(issue.Loc); field != "" {
					messages = append(messages, fmt.Sprintf("%s: %s", field, issue.Msg))
				} else {
					messages = append(messages, issue.Msg)
				}
			}

			return strings.Join(messages, "; ")
		}
	}

	if parsed.Message != "" {
		return parsed.Message
	}

	return parsed.Error
}

// issueField names the offending field, skipping the request part root ("body", "query").
func issueField(loc []any) string {
	parts := make([]string, 0, len(loc))

	for idx, part := range loc {
		text := fmt.Sprint(part)
		if idx == 0 && (text == "body" || text == "query" || text == "path") {
			continue
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, ".")
}
