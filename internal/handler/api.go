package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/service"
)

const (
	sessionPath       = "/tropo/session"
	sessionLookupPath = sessionPath + "/"
	healthPath        = "/health"
)

// API handles webhook requests delivered as API Gateway proxy events.
// The local HTTP server adapts requests into the same events.
type API struct {
	receiver *service.Receiver
	logger   *slog.Logger
}

// NewAPI creates a new API handler.
func NewAPI(receiver *service.Receiver, logger *slog.Logger) *API {
	return &API{
		receiver: receiver,
		logger:   logger,
	}
}

// Handle routes API Gateway requests to the appropriate handler.
func (a *API) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	a.logger.Info("request received",
		"path", req.Path,
		"method", req.HTTPMethod)

	switch {
	case req.Path == sessionPath && req.HTTPMethod == http.MethodPost:
		return a.handleSession(ctx, req)
	case strings.HasPrefix(req.Path, sessionLookupPath) && req.HTTPMethod == http.MethodGet:
		return a.handleLookup(ctx, strings.TrimPrefix(req.Path, sessionLookupPath))
	case req.Path == healthPath && req.HTTPMethod == http.MethodGet:
		return newSuccessResponse(http.StatusOK, map[string]string{"status": "ok"}), nil
	default:
		a.logger.Warn("route not found",
			"path", req.Path,
			"method", req.HTTPMethod)
		return newErrorResponse(http.StatusNotFound, "route not found"), nil
	}
}

// handleSession handles POST /tropo/session requests.
func (a *API) handleSession(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			a.logger.Warn("invalid base64 body", "error", err)
			return newErrorResponse(http.StatusBadRequest, "invalid request body"), nil
		}
		body = decoded
	}

	msg, err := a.receiver.Receive(ctx, body)
	if err != nil {
		a.logger.Warn("invalid session payload", "error", err)
		if errors.Is(err, domain.ErrMissingSession) {
			return newErrorResponse(http.StatusBadRequest, "payload has no session"), nil
		}
		return newErrorResponse(http.StatusBadRequest, "invalid request body"), nil
	}

	return newSuccessResponse(http.StatusOK, sessionResponse(msg)), nil
}

// handleLookup handles GET /tropo/session/{id} requests.
func (a *API) handleLookup(ctx context.Context, sessionID string) (events.APIGatewayProxyResponse, error) {
	if sessionID == "" || strings.Contains(sessionID, "/") {
		return newErrorResponse(http.StatusNotFound, "route not found"), nil
	}

	msg, err := a.receiver.Lookup(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return newErrorResponse(http.StatusNotFound, "session not found"), nil
		}
		a.logger.Error("failed to look up session", "session_id", sessionID, "error", err)
		return newErrorResponse(http.StatusInternalServerError, "internal error"), nil
	}

	return newSuccessResponse(http.StatusOK, sessionResponse(msg)), nil
}

func sessionResponse(msg *domain.Message) SessionResponse {
	return SessionResponse{
		SessionID: msg.Snapshot().ID(),
		Outgoing:  msg.Outgoing(),
		Params:    codec.ResponseParams(msg),
	}
}
