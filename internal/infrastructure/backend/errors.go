package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dentedu/web-gateway/internal/core/domain"
)

// errorBody covers both error envelopes the backend produces:
// {"detail": "..."} (or a list of validation items) and {"message": "..."}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Normalize turns a non-2xx backend response into an APIError. It is the
// only place backend error shapes are interpreted.
func Normalize(status int, body []byte) *domain.APIError {
	msg := backendMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		return &domain.APIError{Kind: domain.KindAuth, Status: status, Message: domain.MsgInvalidCredentials}
	case status == http.StatusForbidden:
		return &domain.APIError{Kind: domain.KindAuth, Status: status, Message: domain.MsgAccountDisabled}
	case status == http.StatusTooManyRequests:
		return &domain.APIError{Kind: domain.KindServer, Status: status, Message: domain.MsgRateLimited}
	case status == http.StatusInternalServerError:
		return &domain.APIError{Kind: domain.KindServer, Status: status, Message: domain.MsgServerError}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "The request was rejected by the server."
		}
		return &domain.APIError{Kind: domain.KindValidation, Status: status, Message: msg}
	}

	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d.", status)
	}
	return &domain.APIError{Kind: domain.KindServer, Status: status, Message: msg}
}

func backendMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if d := detailMessage(eb.Detail); d != "" {
		return d
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
