package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"unicode"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/authorization"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
)

var (
	smtpServer     = os.Getenv("SMTP_SERVER")
	smtpServerPort = 587
	smtpEmail      = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword   = os.Getenv("SMTP_AUTH_PASSWORD")
)

type AuthService struct {
	store    domain.AuthStore
	profiles domain.ProfileStore
	cache    domain.TokenCache
}

func NewAuthService(store domain.AuthStore, profiles domain.ProfileStore, cache domain.TokenCache) *AuthService {
	return &AuthService{
		store:    store,
		profiles: profiles,
		cache:    cache,
	}
}

func (service *AuthService) GetAll(ctx context.Context) ([]*domain.Credentials, error) {
	return service.store.GetAll(ctx)
}

func verifyPassword(s string) (valid bool) {
	hasUpperCase := false
	hasLowerCase := false
	hasDigit := false
	hasSpecial := false

	for _, c := range s {
		switch {
		case unicode.IsNumber(c):
			hasDigit = true
		case unicode.IsUpper(c):
			hasUpperCase = true
		case unicode.IsLower(c):
			hasLowerCase = true
		case unicode.Is(unicode.S, c) || unicode.IsPunct(c):
			hasSpecial = true
		}
	}

	valid = len(s) >= 11 && hasUpperCase && hasLowerCase && hasDigit && hasSpecial
	return
}

// Register creates the credentials and the profile row. The account is not
// signed in afterwards: it still needs mail confirmation.
func (service *AuthService) Register(ctx context.Context, request *domain.RegisterRequest) (string, int, error) {

	if err := request.Validate(); err != nil {
		return "", http.StatusBadRequest, err
	}

	if !verifyPassword(request.Password) {
		return "", http.StatusBadRequest, fmt.Errorf("Invalid password format. It should be at least 11 characters, with at least one uppercase letter, one lowercase letter, one digit, and one special character")
	}

	existing, err := service.store.GetOneUser(ctx, request.Email)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if existing != nil {
		return "", http.StatusConflict, fmt.Errorf(errors.EmailAlreadyExist)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	credentials := domain.Credentials{
		Email:    request.Email,
		Password: string(hash),
		Role:     request.Role,
		Verified: false,
	}

	err = service.store.Register(ctx, &credentials)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	profile := domain.Profile{
		UserID:   credentials.ID.Hex(),
		Email:    request.Email,
		FullName: request.FullName,
		Phone:    request.Phone,
		Role:     request.Role,
	}
	if _, err := service.profiles.Insert(ctx, &profile); err != nil {
		return "", http.StatusInternalServerError, err
	}

	validationToken := uuid.New()
	log.Printf("Generated validation token for %s", request.Email)

	err = service.cache.PostCacheData(ctx, credentials.ID.Hex(), validationToken.String())
	if err != nil {
		log.Printf("Failed to post validation data to redis: %s", err)
		return "", http.StatusInternalServerError, err
	}

	err = sendValidationMail(validationToken, request.Email)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	return credentials.ID.Hex(), http.StatusOK, nil
}

func sendValidationMail(validationToken uuid.UUID, email string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Verify your Bnoy Rooms account")

	bodyString := fmt.Sprintf("Your validation token for your Bnoy Rooms account is:\n%s", validationToken)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)

	if err := client.DialAndSend(message); err != nil {
		log.Printf("failed to send verification mail because of: %s", err)
		return err
	}

	return nil
}

func (service *AuthService) VerifyAccount(ctx context.Context, validation *domain.RegisterValidation) error {

	token, err := service.cache.GetCachedValue(ctx, validation.UserToken)
	if err != nil {
		log.Printf("Error fetching validation token from cache: %s", err)
		return fmt.Errorf(errors.ExpiredTokenError)
	}

	if validation.MailToken != token {
		return fmt.Errorf(errors.InvalidTokenError)
	}

	err = service.cache.DelCachedValue(ctx, validation.UserToken)
	if err != nil {
		log.Printf("error in deleting cached value: %s", err)
		return err
	}

	userID, err := primitive.ObjectIDFromHex(validation.UserToken)
	if err != nil {
		return fmt.Errorf(errors.InvalidUserTokenError)
	}

	credentials := service.store.GetOneUserByID(ctx, userID)
	if credentials == nil {
		return fmt.Errorf("user not found")
	}
	credentials.Verified = true

	err = service.store.UpdateUser(ctx, credentials)
	if err != nil {
		log.Printf("error in updating user after verification: %s", err.Error())
		return err
	}

	return nil
}

func (service *AuthService) ResendVerificationToken(ctx context.Context, request *domain.ResendVerificationRequest) error {
	if len(request.UserMail) == 0 {
		return fmt.Errorf(errors.InvalidResendMailError)
	}

	tokenUUID, _ := uuid.NewUUID()

	err := service.cache.PostCacheData(ctx, request.UserToken, tokenUUID.String())
	if err != nil {
		return err
	}

	err = sendValidationMail(tokenUUID, request.UserMail)
	if err != nil {
		return err
	}

	return nil
}

// SendRecoveryPasswordToken mails a one-time recovery token. Fire and
// forget from the caller's point of view.
func (service *AuthService) SendRecoveryPasswordToken(ctx context.Context, email string) (string, int, error) {

	credentials, err := service.store.GetOneUser(ctx, email)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	if credentials == nil {
		return "", http.StatusNotFound, fmt.Errorf(errors.NotFoundMailError)
	}

	userID := credentials.ID.Hex()

	recoverUUID, _ := uuid.NewUUID()
	err = sendRecoverPasswordMail(recoverUUID, email)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	err = service.cache.PostCacheData(ctx, userID, recoverUUID.String())
	if err != nil {
		return "", http.StatusInternalServerError, err
	}

	return userID, http.StatusOK, nil
}

func sendRecoverPasswordMail(validationToken uuid.UUID, email string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Recover password on your Bnoy Rooms account")

	bodyString := fmt.Sprintf("Your recover password token is:\n%s", validationToken)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)

	if err := client.DialAndSend(message); err != nil {
		log.Printf("failed to send recovery mail because of: %s", err)
		return err
	}

	return nil
}

func (service *AuthService) CheckRecoveryPasswordToken(ctx context.Context, request *domain.RegisterValidation) error {

	if len(request.UserToken) == 0 {
		return fmt.Errorf(errors.InvalidUserTokenError)
	}

	token, err := service.cache.GetCachedValue(ctx, request.UserToken)
	if err != nil {
		return fmt.Errorf(errors.InvalidTokenError)
	}

	if request.MailToken != token {
		return fmt.Errorf(errors.InvalidTokenError)
	}

	_ = service.cache.DelCachedValue(ctx, request.UserToken)
	return nil
}

func (service *AuthService) RecoverPassword(ctx context.Context, recoverPassword *domain.RecoverPasswordRequest) error {
	if recoverPassword.NewPassword != recoverPassword.RepeatedNew {
		return fmt.Errorf(errors.NotMatchingPasswordsError)
	}

	primitiveID, err := primitive.ObjectIDFromHex(recoverPassword.UserID)
	if err != nil {
		return err
	}

	credentials := service.store.GetOneUserByID(ctx, primitiveID)
	if credentials == nil {
		return fmt.Errorf("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(recoverPassword.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	credentials.Password = string(hash)

	return service.store.UpdateUser(ctx, credentials)
}

func (service *AuthService) ChangePassword(ctx context.Context, password domain.PasswordChange, token string) (string, int, error) {

	parsedToken := authorization.GetToken(token)
	if parsedToken == nil {
		return "", http.StatusUnauthorized, fmt.Errorf(errors.InvalidTokenError)
	}
	claims, err := authorization.GetClaims(parsedToken.Bytes())
	if err != nil {
		return "", http.StatusUnauthorized, err
	}

	user, err := service.store.GetOneUser(ctx, claims.Email)
	if err != nil || user == nil {
		return "", http.StatusInternalServerError, fmt.Errorf("user not found")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password.OldPassword))
	if err != nil {
		return "oldPassErr", http.StatusConflict, fmt.Errorf("Old password is incorrect")
	}

	if !verifyPassword(password.NewPassword) {
		return "Invalid password format. It should be at least 11 characters, with at least one uppercase letter, one lowercase letter, one digit, and one special character", http.StatusBadRequest, fmt.Errorf("Invalid password format")
	}

	if password.NewPassword != password.NewPasswordConfirm {
		return "newPassErr", http.StatusNotAcceptable, fmt.Errorf("New password does not match confirmation")
	}

	newEncryptedPassword, err := bcrypt.GenerateFromPassword([]byte(password.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return "Error trying to hash password.", http.StatusInternalServerError, err
	}

	user.Password = string(newEncryptedPassword)

	err = service.store.UpdateUser(ctx, user)
	if err != nil {
		return "baseErr", http.StatusInternalServerError, err
	}

	return "OK", http.StatusOK, nil
}

// Login exchanges credentials for a JWT. An unverified account gets a fresh
// verification mail instead of a token.
func (service *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := service.store.GetOneUser(ctx, email)
	if err != nil {
		return "", fmt.Errorf("Error retrieving user: %v", err)
	}
	if user == nil {
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	if !user.Verified {
		verify := domain.ResendVerificationRequest{
			UserToken: user.ID.Hex(),
			UserMail:  user.Email,
		}

		err = service.ResendVerificationToken(ctx, &verify)
		if err != nil {
			return "", err
		}

		return user.ID.Hex(), fmt.Errorf(errors.NotVerifiedUser)
	}

	passError := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if passError != nil {
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	tokenString, err := authorization.GenerateJWT(user)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// OAuthURL builds the provider redirect; a successful flow never returns
// control here, so this only ever fails before the redirect.
func (service *AuthService) OAuthURL(provider, redirectTo string) (string, error) {
	base := os.Getenv("OAUTH_GATEWAY_URL")
	if base == "" {
		return "", fmt.Errorf("oauth gateway is not configured")
	}
	if provider == "" {
		return "", fmt.Errorf("unknown oauth provider")
	}
	return fmt.Sprintf("%s/authorize?provider=%s&redirect_to=%s", base, provider, redirectTo), nil
}
