package qa

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gzpearl/pearlchat/pkg/utils"
)

// Handler 问答桩服务的HTTP处理器
type Handler struct {
	responder *Responder
}

// New 创建问答处理器
func New(responder *Responder) *Handler {
	return &Handler{responder: responder}
}

// RegisterRoutes 注册问答相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/qa", h.handleQA)
}

// handleQA 回答一个问题
func (h *Handler) handleQA(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question  string `json:"question"`
		UserID    string `json:"user_id"`
		SessionID string `json:"session_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "request body error")
		return
	}

	answer := h.responder.Answer(payload.Question)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
