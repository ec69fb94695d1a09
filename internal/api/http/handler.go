package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/weshockley/rest-service/internal/service"
	platformobservability "github.com/weshockley/rest-service/platform/observability"
)

// GreetingService - то, что нужно handler от service слоя
type GreetingService interface {
	Greet(ctx context.Context, name string) service.Greeting
}

// Handler содержит HTTP-обработчики greeting сервиса
type Handler struct {
	greetingService GreetingService
	logger          *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(greetingService GreetingService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		greetingService: greetingService,
		logger:          logger,
	}
}

// GreetingResponse представляет HTTP ответ с приветствием
type GreetingResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// GetGreeting обрабатывает GET /greeting?name=... - пустое или отсутствующее имя даёт "World"
func (h *Handler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	greeting := h.greetingService.Greet(ctx, r.URL.Query().Get("name"))

	resp := GreetingResponse{
		ID:      greeting.ID,
		Content: greeting.Content,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// заголовки уже отправлены, остаётся только залогировать
		platformobservability.LoggerFromContext(ctx, h.logger).Warn("failed to encode greeting response", zap.Error(err))
	}
}
