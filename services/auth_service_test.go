package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaberb281-art/ecommerce-backend/models"
)

const testSecret = "test-secret"

func newAuthService(db *gorm.DB) *AuthService {
	// MinCost keeps the hashing fast in tests.
	return NewAuthService(db, testSecret, bcrypt.MinCost)
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("jane@example.com", "hunter22", "Jane")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user id")
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected role user, got %s", user.Role)
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plain text")
	}

	token, loggedIn, err := svc.Login("jane@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, loggedIn.ID)
	}

	claims := &AuthClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Subject != user.ID || claims.Email != user.Email || claims.Role != models.RoleUser {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register("jane@example.com", "hunter22", "Jane"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register("jane@example.com", "other-pass", "Imposter")
	appErr := requireAppErr(t, err, "EMAIL_ALREADY_EXISTS")
	if appErr.Status != 409 {
		t.Errorf("expected status 409, got %d", appErr.Status)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register("jane@example.com", "hunter22", "Jane"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login("jane@example.com", "wrong")
	requireAppErr(t, err, "INVALID_CREDENTIALS")

	// Unknown email gets the exact same failure.
	_, _, err = svc.Login("nobody@example.com", "hunter22")
	requireAppErr(t, err, "INVALID_CREDENTIALS")
}

func TestProfile(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("jane@example.com", "hunter22", "Jane")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, profile.Email)
	}

	_, err = svc.Profile("missing-id")
	requireAppErr(t, err, "USER_NOT_FOUND")
}
