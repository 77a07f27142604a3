package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type ProfileHandler struct {
	service *application.ProfileService
	tracer  trace.Tracer
}

func NewProfileHandler(service *application.ProfileService, tracer trace.Tracer) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *ProfileHandler) Init(router *mux.Router) {
	router.HandleFunc("/profile", handler.GetOwn).Methods("GET")
	router.HandleFunc("/profile", handler.UpdateOwn).Methods("PATCH")
	router.HandleFunc("/profiles", handler.GetAll).Methods("GET")
}

func (handler *ProfileHandler) GetOwn(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.GetOwn")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	profile, err := handler.service.FetchProfile(ctx, claims.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(writer, errors.NotFoundUserError, http.StatusNotFound)
		return
	}

	profile.ToJSON(writer)
}

func (handler *ProfileHandler) UpdateOwn(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.UpdateOwn")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&fields); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	profile, err := handler.service.UpdateProfile(ctx, claims.UserID, fields)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.ImmutableProfileField {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	profile.ToJSON(writer)
}

func (handler *ProfileHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.GetAll")
	defer span.End()

	profiles, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(profiles, writer)
}
