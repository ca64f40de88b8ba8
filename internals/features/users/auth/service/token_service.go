package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"studentrecords_backend/internals/configs"
	authModel "studentrecords_backend/internals/features/users/auth/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
)

const accessTTL = 24 * time.Hour

// GenerateToken signs an access token carrying identity and privilege claims.
// The role and staff flag travel in the token so the gate middleware can
// decide before touching the database.
func GenerateToken(user *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"role":     string(user.Role),
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// BlacklistToken invalidates a presented token until its natural expiry.
func BlacklistToken(db *gorm.DB, token string) error {
	entry := authModel.TokenBlacklistModel{
		Token:     token,
		ExpiresAt: time.Now().Add(accessTTL),
	}
	return db.Create(&entry).Error
}
