package utils

import (
	"strconv"
	"time"

	"omnipost/domain/model"
	"omnipost/infrastructure/configuration"

	"github.com/golang-jwt/jwt"
)

func GetCurrentTime() time.Time {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	return time.Now().In(loc)
}

func GenerateToken(user model.User) (string, error) {
	claims := model.UserClaims{
		UserName: user.UserName,
		StandardClaims: jwt.StandardClaims{
			Id:        strconv.Itoa(user.ID),
			Issuer:    "omnipost",
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configuration.C.App.SecretKey))
}
