package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
)

type AuthHandler struct {
	service *application.AuthService
	tracer  trace.Tracer
}

func NewAuthHandler(service *application.AuthService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/auth/register", handler.Register).Methods("POST")
	router.HandleFunc("/auth/login", handler.Login).Methods("POST")
	router.HandleFunc("/auth/oauth/{provider}", handler.OAuthURL).Methods("GET")
	router.HandleFunc("/auth/verifyAccount", handler.VerifyAccount).Methods("POST")
	router.HandleFunc("/auth/resendVerify", handler.ResendVerificationToken).Methods("POST")
	router.HandleFunc("/auth/recoverPasswordToken", handler.SendRecoveryPasswordToken).Methods("POST")
	router.HandleFunc("/auth/checkRecoverToken", handler.CheckRecoveryPasswordToken).Methods("POST")
	router.HandleFunc("/auth/recoverPassword", handler.RecoverPassword).Methods("POST")
	router.HandleFunc("/auth/changePassword", handler.ChangePassword).Methods("POST")
}

func (handler *AuthHandler) Register(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Register")
	defer span.End()

	var request domain.RegisterRequest
	if err := request.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	userID, statusCode, err := handler.service.Register(ctx, &request)
	if err != nil {
		http.Error(writer, err.Error(), statusCode)
		return
	}

	// The account is created but not signed in; the caller messages the
	// user to check mail.
	jsonResponse(userID, writer)
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, request.Email, request.Password)
	if err != nil {
		if err.Error() == errors.NotVerifiedUser {
			http.Error(writer, token, http.StatusLocked)
			return
		}
		http.Error(writer, errors.InvalidCredentials, http.StatusUnauthorized)
		return
	}

	writer.Write([]byte(token))
}

func (handler *AuthHandler) OAuthURL(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.OAuthURL")
	defer span.End()

	vars := mux.Vars(req)
	redirectTo := req.URL.Query().Get("redirect_to")
	if redirectTo == "" {
		redirectTo = "/"
	}

	url, err := handler.service.OAuthURL(vars["provider"], redirectTo)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(url, writer)
}

func (handler *AuthHandler) VerifyAccount(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.VerifyAccount")
	defer span.End()

	var request domain.RegisterValidation
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		log.Println(err)
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.UserToken) == 0 {
		http.Error(writer, errors.InvalidUserTokenError, http.StatusBadRequest)
		return
	}

	err = handler.service.VerifyAccount(ctx, &request)
	if err != nil {
		if err.Error() == errors.InvalidTokenError {
			http.Error(writer, errors.InvalidTokenError, http.StatusNotAcceptable)
		} else if err.Error() == errors.ExpiredTokenError {
			http.Error(writer, errors.ExpiredTokenError, http.StatusNotFound)
		} else {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *AuthHandler) ResendVerificationToken(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.ResendVerificationToken")
	defer span.End()

	var request domain.ResendVerificationRequest
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	err = handler.service.ResendVerificationToken(ctx, &request)
	if err != nil {
		if err.Error() == errors.InvalidResendMailError {
			http.Error(writer, err.Error(), http.StatusNotAcceptable)
			return
		}
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *AuthHandler) SendRecoveryPasswordToken(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.SendRecoveryPasswordToken")
	defer span.End()

	buf := new(strings.Builder)
	_, err := io.Copy(buf, req.Body)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	id, statusCode, err := handler.service.SendRecoveryPasswordToken(ctx, buf.String())
	if err != nil {
		http.Error(writer, err.Error(), statusCode)
		return
	}

	jsonResponse(id, writer)
}

func (handler *AuthHandler) CheckRecoveryPasswordToken(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.CheckRecoveryPasswordToken")
	defer span.End()

	var request domain.RegisterValidation
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	err = handler.service.CheckRecoveryPasswordToken(ctx, &request)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusNotAcceptable)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *AuthHandler) RecoverPassword(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.RecoverPassword")
	defer span.End()

	var request domain.RecoverPasswordRequest
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	err = handler.service.RecoverPassword(ctx, &request)
	if err != nil {
		if err.Error() == errors.NotMatchingPasswordsError {
			http.Error(writer, err.Error(), http.StatusNotAcceptable)
			return
		}
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func (handler *AuthHandler) ChangePassword(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.ChangePassword")
	defer span.End()

	bearer := req.Header.Get("Authorization")
	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		http.Error(writer, "unauthorized", http.StatusUnauthorized)
		return
	}

	var request domain.PasswordChange
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	message, statusCode, err := handler.service.ChangePassword(ctx, request, bearerToken[1])
	if err != nil {
		http.Error(writer, message, statusCode)
		return
	}

	writer.WriteHeader(http.StatusOK)
}
