package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Data any `json:"data"`
}

// SessionResponse is the data returned for a received or journaled session.
type SessionResponse struct {
	SessionID string        `json:"sessionId,omitempty"`
	Outgoing  bool          `json:"outgoing"`
	Params    domain.Params `json:"params"`
}

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
}

func newErrorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
	if err != nil {
		slog.Error("failed to marshal error response",
			"error", err,
			"status_code", statusCode,
			"message", message)
		return internalError("failed to build error response")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}

func newSuccessResponse(statusCode int, data any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(SuccessResponse{Data: data})
	if err != nil {
		slog.Error("failed to marshal success response",
			"error", err,
			"status_code", statusCode)
		return internalError("failed to build response")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}

func internalError(message string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    jsonHeaders,
		Body:       `{"error":"Internal Server Error","message":"` + message + `"}`,
	}
}
