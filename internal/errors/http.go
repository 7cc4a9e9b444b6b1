package errors

import (
	"encoding/json"
	"net/http"
)

// Body is the JSON shape errors take on the wire
type Body struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// ToBody converts any error into its wire representation.
// Internal errors hide their message behind a generic one.
func ToBody(err error) (int, Body) {
	code := GetCode(err)
	body := Body{
		Code:    code,
		Message: GetMessage(err),
		Meta:    GetMeta(err),
	}
	if code == CodeInternal {
		body.Message = "internal error"
		body.Meta = nil
	}
	return code.HTTPStatus(), body
}

// FromBody rebuilds an Error from a response body received from the API
func FromBody(status int, data []byte) *Error {
	var body Body
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return Newf(codeForStatus(status), "unexpected response: %s", http.StatusText(status))
	}
	return &Error{Code: body.Code, Message: body.Message, Meta: body.Meta}
}

func codeForStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidArgument
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeAlreadyExists
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}
