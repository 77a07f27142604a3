package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"github.com/sony/gobreaker"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type InsightsHandler struct {
	insights   *application.InsightsService
	properties *application.PropertyService
	tracer     trace.Tracer
}

func NewInsightsHandler(insights *application.InsightsService, properties *application.PropertyService, tracer trace.Tracer) *InsightsHandler {
	return &InsightsHandler{
		insights:   insights,
		properties: properties,
		tracer:     tracer,
	}
}

func (handler *InsightsHandler) Init(router *mux.Router) {
	router.HandleFunc("/properties/{id}/insights", handler.PropertyInsights).Methods("GET")
}

func (handler *InsightsHandler) PropertyInsights(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "InsightsHandler.PropertyInsights")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid property id", http.StatusBadRequest)
		return
	}

	property, err := handler.properties.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	if property == nil {
		http.Error(writer, errors.PropertyNotFoundError, http.StatusNotFound)
		return
	}

	rooms, err := handler.properties.GetRooms(ctx, property.ID.Hex())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := handler.insights.PropertyInsights(ctx, property, rooms)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			http.Error(writer, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(writer, err.Error(), http.StatusBadGateway)
		return
	}

	jsonResponse(text, writer)
}
