package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type RecommendationHandler struct {
	service *application.RecommendationService
	tracer  trace.Tracer
}

func NewRecommendationHandler(service *application.RecommendationService, tracer trace.Tracer) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *RecommendationHandler) Init(router *mux.Router) {
	router.HandleFunc("/recommendations", handler.Recommend).Methods("GET")
}

func (handler *RecommendationHandler) Recommend(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RecommendationHandler.Recommend")
	defer span.End()

	scored, err := handler.service.Recommend(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(scored, writer)
}
