package services

import (
	"errors"
	"testing"
	"time"

	"github.com/IonPetrascu/pizza-backend/repository"
	"github.com/IonPetrascu/pizza-backend/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("Ion Petrascu", "Ion@Test.RU ", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ion@test.ru" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Role != "USER" {
		t.Errorf("role = %q, want USER", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	if _, err := svc.Register("Someone Else", "ion@test.ru", "other456"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.Login("ion@test.ru", "secret123"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := svc.Login("ion@test.ru", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody@test.ru", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("Ion Petrascu", "ion@test.ru", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := utils.ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != "USER" {
		t.Errorf("claims mismatch: %+v", claims)
	}

	if _, err := utils.ParseToken(token, "other-secret"); err == nil {
		t.Error("token verified with the wrong secret")
	}
}
