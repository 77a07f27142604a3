package authorization

import (
	"log"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

func GenerateJWT(credentials *domain.Credentials) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, jwtKey)
	if err != nil {
		log.Println(err)
		return "", err
	}

	builder := jwt.NewBuilder(signer)

	claims := &domain.Claims{
		UserID:    credentials.ID.Hex(),
		Email:     credentials.Email,
		Role:      credentials.Role,
		ExpiresAt: time.Now().Add(time.Minute * 60),
	}

	token, err := builder.Build(claims)
	if err != nil {
		log.Println(err)
		return "", err
	}

	return token.String(), nil
}

func GetToken(tokenString string) *jwt.Token {
	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		log.Println(err)
	}
	return token
}

func GetClaims(tokenBytes []byte) (*domain.Claims, error) {
	var claims domain.Claims

	err := jwt.ParseClaims(tokenBytes, verifier, &claims)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	return &claims, nil
}
