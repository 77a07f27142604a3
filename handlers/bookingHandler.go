package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gocql/gocql"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/session"
)

type BookingHandler struct {
	service *application.BookingService
	tracer  trace.Tracer
}

func NewBookingHandler(service *application.BookingService, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/bookings/price", handler.Price).Methods("POST")
	router.HandleFunc("/bookings", handler.Submit).Methods("POST")
	router.HandleFunc("/bookings", handler.GetByUser).Methods("GET")
	router.HandleFunc("/bookings/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/bookings/{id}/cancel", handler.Cancel).Methods("POST")
	router.HandleFunc("/properties/{propertyId}/bookings", handler.GetByProperty).Methods("GET")
}

// Price re-runs the draft derivation for the form view. No authentication
// needed to see a price.
func (handler *BookingHandler) Price(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Price")
	defer span.End()

	var record map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&record); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}
	draft := domain.MapRecordToDraft(record)

	priced, total, payable, err := handler.service.PriceDraft(ctx, draft)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(map[string]interface{}{
		"draft":        priced,
		"totalAmount":  total,
		"totalPayable": payable,
	}, writer)
}

func (handler *BookingHandler) Submit(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Submit")
	defer span.End()

	claims := claimsFromRequest(req)
	userID := ""
	if claims != nil {
		userID = claims.UserID
	}

	var draft domain.BookingDraft
	if err := draft.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	booking, err := handler.service.Submit(ctx, userID, &draft)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err {
		case session.ErrUnauthenticated:
			// The login-redirect analog: the client is told where to go.
			writer.Header().Set("Location", session.LoginRoute)
			http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		case domain.ErrGuestOverflow, domain.ErrCheckOutMissing, domain.ErrRoomRequired, domain.ErrNoDailyRate:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		}
		return
	}

	jsonResponse(booking, writer)
}

func (handler *BookingHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Get")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	id, err := gocql.ParseUUID(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid booking id", http.StatusBadRequest)
		return
	}

	booking, err := handler.service.Get(ctx, claims.UserID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	if booking == nil {
		http.Error(writer, "booking not found", http.StatusNotFound)
		return
	}

	booking.ToJSON(writer)
}

func (handler *BookingHandler) GetByUser(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByUser")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	bookings, err := handler.service.GetByUser(ctx, claims.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	bookings.ToJSON(writer)
}

func (handler *BookingHandler) GetByProperty(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetByProperty")
	defer span.End()

	bookings, err := handler.service.GetByProperty(ctx, mux.Vars(req)["propertyId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	bookings.ToJSON(writer)
}

func (handler *BookingHandler) Cancel(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Cancel")
	defer span.End()

	claims := claimsFromRequest(req)
	if claims == nil {
		http.Error(writer, errors.UnauthenticatedError, http.StatusUnauthorized)
		return
	}

	id, err := gocql.ParseUUID(mux.Vars(req)["id"])
	if err != nil {
		http.Error(writer, "invalid booking id", http.StatusBadRequest)
		return
	}

	if err := handler.service.Cancel(ctx, claims.UserID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	writer.WriteHeader(http.StatusOK)
}
