package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/apperr"
	"github.com/jaberb281-art/ecommerce-backend/models"
)

// dummyHash is a real bcrypt hash compared against when the email is unknown,
// so login takes the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const tokenTTL = 24 * time.Hour

// AuthClaims is the JWT payload shared with the auth middleware.
type AuthClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db         *gorm.DB
	jwtSecret  []byte
	bcryptCost int
}

func NewAuthService(db *gorm.DB, jwtSecret string, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), bcryptCost: bcryptCost}
}

// Register creates an account with a hashed password. Duplicate emails are
// caught up front so the unique constraint never surfaces as a raw 500.
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("EMAIL_ALREADY_EXISTS", "An account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Role:     models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("EMAIL_ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return &user, nil
}

// Login verifies credentials and issues a signed token carrying the user's
// id, email and role.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	// Compare even when the user is unknown; uniform timing keeps email
	// enumeration off the table.
	hash := dummyHash
	if found {
		hash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if !found || compareErr != nil {
		return "", nil, apperr.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	}

	claims := AuthClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, &user, nil
}

// Profile returns the authenticated user's public record.
func (s *AuthService) Profile(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("USER_NOT_FOUND", "User profile not found")
		}
		return nil, err
	}
	return &user, nil
}
