package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftcoach/internal/labeling"
	"github.com/2beens/liftcoach/internal/telemetry/tracing"
	"github.com/2beens/liftcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recommendation

type recommendationService interface {
	Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error)
	FinishExposure(ctx context.Context, req FinishExposureRequest) (*ExposureResult, error)
}

type eventsLister interface {
	List(ctx context.Context, params ListEventsParams) ([]RecommendationEvent, int, error)
	Get(ctx context.Context, id string) (*RecommendationEvent, error)
}

type labelsExporter interface {
	ListForExport(ctx context.Context, params labeling.ExportParams) ([]labeling.ExposureLabels, error)
}

type ListEventsResponse struct {
	Events []RecommendationEvent `json:"events"`
	Total  int                   `json:"total"`
}

type ExportLabelsResponse struct {
	Labels []labeling.ExposureLabels `json:"labels"`
	Total  int                       `json:"total"`
}

type Handler struct {
	service recommendationService
	events  eventsLister
	labels  labelsExporter
}

func NewHandler(service recommendationService, events eventsLister, labels labelsExporter) *Handler {
	return &Handler{
		service: service,
		events:  events,
		labels:  labels,
	}
}

func (handler *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendation.recommend")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("recommend, unmarshal json params: %s", err)
		http.Error(w, "recommendation failed", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.ExerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}

	recommendation, err := handler.service.Recommend(ctx, req)
	if err != nil {
		log.Errorf("failed to recommend [%s/%s]: %s", req.UserID, req.ExerciseID, err)
		http.Error(w, "error, recommendation failed", http.StatusInternalServerError)
		return
	}

	recommendationJson, err := json.Marshal(recommendation)
	if err != nil {
		log.Errorf("failed to marshal recommendation: %s", err)
		http.Error(w, "error, recommendation failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recommendationJson, http.StatusCreated)
}

func (handler *Handler) HandleFinishExposure(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendation.finishExposure")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req FinishExposureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("finish exposure, unmarshal json params: %s", err)
		http.Error(w, "finish exposure failed", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.ExerciseID == "" || req.ExposureID == "" {
		http.Error(w, "error, user id, exercise id or exposure id empty", http.StatusBadRequest)
		return
	}
	if req.ModificationReason != nil && !req.ModificationReason.IsValid() {
		http.Error(w, "error, invalid modification reason", http.StatusBadRequest)
		return
	}

	result, err := handler.service.FinishExposure(ctx, req)
	switch {
	case errors.Is(err, ErrNoPerformedSets):
		http.Error(w, "error, no performed sets", http.StatusBadRequest)
		return
	case errors.Is(err, ErrExposureInProgress):
		http.Error(w, "error, exposure finish already in progress", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to finish exposure [%s]: %s", req.ExposureID, err)
		http.Error(w, "error, finish exposure failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal exposure result: %s", err)
		http.Error(w, "error, finish exposure failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendation.getEvent")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, event id empty", http.StatusBadRequest)
		return
	}

	event, err := handler.events.Get(ctx, id)
	if errors.Is(err, ErrEventNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get event [%s]: %s", id, err)
		http.Error(w, "error, failed to get event", http.StatusInternalServerError)
		return
	}

	eventJson, err := json.Marshal(event)
	if err != nil {
		log.Errorf("failed to marshal event: %s", err)
		http.Error(w, "error, failed to get event", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, eventJson, http.StatusOK)
}

func (handler *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendation.listEvents")
	defer span.End()

	params, err := listEventsParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, total, err := handler.events.List(ctx, *params)
	if err != nil {
		log.Errorf("failed to list events: %s", err)
		http.Error(w, "error, failed to list events", http.StatusInternalServerError)
		return
	}

	resp := ListEventsResponse{
		Events: events,
		Total:  total,
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal events: %s", err)
		http.Error(w, "error, failed to list events", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleExportLabels serves the labeled-exposure rows consumed by
// downstream model training. Only clean labels unless asked otherwise.
func (handler *Handler) HandleExportLabels(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendation.exportLabels")
	defer span.End()

	params := labeling.ExportParams{
		UserID:         r.URL.Query().Get("userId"),
		ExerciseID:     r.URL.Query().Get("exerciseId"),
		IncludeUnclean: r.URL.Query().Get("includeUnclean") == "true",
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(w, "error, invalid from timestamp", http.StatusBadRequest)
			return
		}
		params.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(w, "error, invalid to timestamp", http.StatusBadRequest)
			return
		}
		params.To = &t
	}

	labels, err := handler.labels.ListForExport(ctx, params)
	if err != nil {
		log.Errorf("failed to export labels: %s", err)
		http.Error(w, "error, failed to export labels", http.StatusInternalServerError)
		return
	}

	resp := ExportLabelsResponse{
		Labels: labels,
		Total:  len(labels),
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal labels: %s", err)
		http.Error(w, "error, failed to export labels", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func listEventsParams(r *http.Request) (*ListEventsParams, error) {
	params := ListEventsParams{
		UserID:     r.URL.Query().Get("userId"),
		ExerciseID: r.URL.Query().Get("exerciseId"),
		Page:       1,
		Size:       50,
	}

	if page := r.URL.Query().Get("page"); page != "" {
		pageInt, err := strconv.Atoi(page)
		if err != nil || pageInt < 1 {
			return nil, errors.New("error, invalid page")
		}
		params.Page = pageInt
	}
	if size := r.URL.Query().Get("size"); size != "" {
		sizeInt, err := strconv.Atoi(size)
		if err != nil || sizeInt < 1 {
			return nil, errors.New("error, invalid size")
		}
		params.Size = sizeInt
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, errors.New("error, invalid from timestamp")
		}
		params.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, errors.New("error, invalid to timestamp")
		}
		params.To = &t
	}

	return &params, nil
}
