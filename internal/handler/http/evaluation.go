package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/evaluation"
	"github.com/sitehr/sitehr-backend-go/internal/handler/http/response"
)

type EvaluationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type evaluationHandlerImpl struct {
	evaluationService evaluation.EvaluationService
}

func NewEvaluationHandler(evaluationService evaluation.EvaluationService) EvaluationHandler {
	return &evaluationHandlerImpl{
		evaluationService: evaluationService,
	}
}

// Create implements EvaluationHandler.
func (h *evaluationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req evaluation.CreateEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.evaluationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Evaluation recorded", result)
}

// List implements EvaluationHandler.
func (h *evaluationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := evaluation.EvaluationFilter{
		WorkerID:    queryPtr(r, "worker_id"),
		WorkerType:  queryPtr(r, "worker_type"),
		PeriodYear:  queryIntPtr(r, "period_year"),
		PeriodMonth: queryIntPtr(r, "period_month"),
		Page:        queryInt(r, "page", 1),
		Limit:       queryInt(r, "limit", 20),
	}

	result, err := h.evaluationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements EvaluationHandler.
func (h *evaluationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements EvaluationHandler.
func (h *evaluationHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", time.Now().Year())

	result, err := h.evaluationService.Summary(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
