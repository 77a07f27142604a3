package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type ReviewHandler struct {
	service *application.ReviewService
	tracer  trace.Tracer
}

func NewReviewHandler(service *application.ReviewService, tracer trace.Tracer) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *ReviewHandler) Init(router *mux.Router) {
	router.HandleFunc("/properties/{propertyId}/reviews", handler.GetByProperty).Methods("GET")
	router.HandleFunc("/properties/{propertyId}/reviews", handler.Create).Methods("POST")
	router.HandleFunc("/reviews/{id}", handler.Delete).Methods("DELETE")
}

func (handler *ReviewHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReviewHandler.Create")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	var review domain.Review
	if err := review.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}
	review.PropertyID = mux.Vars(req)["propertyId"]
	review.UserID = claims.UserID

	created, err := handler.service.Create(ctx, &review)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	created.ToJSON(writer)
}

func (handler *ReviewHandler) GetByProperty(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReviewHandler.GetByProperty")
	defer span.End()

	reviews, err := handler.service.GetByProperty(ctx, mux.Vars(req)["propertyId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	reviews.ToJSON(writer)
}

func (handler *ReviewHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReviewHandler.Delete")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid review id", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusOK)
}
