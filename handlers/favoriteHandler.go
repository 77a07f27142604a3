package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type FavoriteHandler struct {
	service *application.FavoriteService
	tracer  trace.Tracer
}

func NewFavoriteHandler(service *application.FavoriteService, tracer trace.Tracer) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *FavoriteHandler) Init(router *mux.Router) {
	router.HandleFunc("/favorites", handler.GetOwn).Methods("GET")
	router.HandleFunc("/favorites/{propertyId}", handler.Add).Methods("POST")
	router.HandleFunc("/favorites/{propertyId}", handler.Remove).Methods("DELETE")
}

func (handler *FavoriteHandler) Add(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "FavoriteHandler.Add")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	favorite, err := handler.service.Add(ctx, claims.UserID, mux.Vars(req)["propertyId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(favorite, writer)
}

func (handler *FavoriteHandler) Remove(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "FavoriteHandler.Remove")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	if err := handler.service.Remove(ctx, claims.UserID, mux.Vars(req)["propertyId"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *FavoriteHandler) GetOwn(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "FavoriteHandler.GetOwn")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	favorites, err := handler.service.GetByUser(ctx, claims.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(favorites, writer)
}
