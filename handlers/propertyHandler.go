package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type PropertyHandler struct {
	service *application.PropertyService
	tracer  trace.Tracer
}

func NewPropertyHandler(service *application.PropertyService, tracer trace.Tracer) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *PropertyHandler) Init(router *mux.Router) {
	router.HandleFunc("/properties", handler.GetAll).Methods("GET")
	router.HandleFunc("/properties/search", handler.Search).Methods("GET")
	router.HandleFunc("/properties", handler.Create).Methods("POST")
	router.HandleFunc("/properties/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/properties/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/properties/{id}", handler.Delete).Methods("DELETE")
	router.HandleFunc("/properties/{id}/rooms", handler.GetRooms).Methods("GET")
	router.HandleFunc("/properties/{id}/rooms", handler.AddRoom).Methods("POST")
	router.HandleFunc("/properties/{id}/images", handler.GetImageURLs).Methods("GET")
	router.HandleFunc("/properties/{id}/images/{imageName}", handler.GetImage).Methods("GET")
	router.HandleFunc("/properties/{id}/images/{imageName}", handler.UploadImage).Methods("POST")
	router.HandleFunc("/merchant/properties", handler.GetByMerchant).Methods("GET")
}

func (handler *PropertyHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.Create")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	var property domain.Property
	if err := property.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, claims.UserID, &property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	created.ToJSON(writer)
}

func (handler *PropertyHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.Get")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid property id", http.StatusBadRequest)
		return
	}

	property, err := handler.service.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	if property == nil {
		http.Error(writer, errors.PropertyNotFoundError, http.StatusNotFound)
		return
	}

	property.ToJSON(writer)
}

func (handler *PropertyHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetAll")
	defer span.End()

	properties, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	properties.ToJSON(writer)
}

func (handler *PropertyHandler) Search(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.Search")
	defer span.End()

	query := req.URL.Query()
	maxPrice, _ := strconv.Atoi(query.Get("maxPrice"))
	filter := &domain.PropertyFilter{
		City:      query.Get("city"),
		Type:      domain.PropertyType(query.Get("type")),
		MaxPrice:  maxPrice,
		TimeFrame: domain.TimeFrame(query.Get("timeFrame")),
	}

	properties, err := handler.service.Search(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	properties.ToJSON(writer)
}

func (handler *PropertyHandler) GetByMerchant(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetByMerchant")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	properties, err := handler.service.GetByMerchant(ctx, claims.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	properties.ToJSON(writer)
}

func (handler *PropertyHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.Update")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid property id", http.StatusBadRequest)
		return
	}

	var property domain.Property
	if err := property.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}
	property.ID = id

	if err := handler.service.Update(ctx, claims.UserID, &property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *PropertyHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.Delete")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid property id", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, claims.UserID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *PropertyHandler) GetRooms(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetRooms")
	defer span.End()

	rooms, err := handler.service.GetRooms(ctx, mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	rooms.ToJSON(writer)
}

func (handler *PropertyHandler) AddRoom(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.AddRoom")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	var room domain.PropertyRoom
	if err := room.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}
	room.PropertyID = mux.Vars(req)["id"]

	created, err := handler.service.AddRoom(ctx, &room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(created, writer)
}

func (handler *PropertyHandler) UploadImage(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.UploadImage")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(req)
	content, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	url, err := handler.service.UploadImage(ctx, vars["id"], vars["imageName"], content)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(url, writer)
}

func (handler *PropertyHandler) GetImage(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetImage")
	defer span.End()

	vars := mux.Vars(req)
	content, err := handler.service.GetImage(ctx, vars["id"], vars["imageName"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}

	writer.Header().Set("Content-Type", "image/jpeg")
	writer.Write(content)
}

func (handler *PropertyHandler) GetImageURLs(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetImageURLs")
	defer span.End()

	urls, err := handler.service.GetImageURLs(ctx, mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(urls, writer)
}
