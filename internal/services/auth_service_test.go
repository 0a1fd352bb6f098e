package services

import (
	"testing"

	"laundry_app/internal/auth"
	"laundry_app/internal/models"
	"laundry_app/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret")

	user, token, err := svc.Register("budi@test.id", "rahasia1", "Budi", "6281234567890")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != string(models.RoleCustomer) {
		t.Fatalf("role = %s, want customer", user.Role)
	}
	if user.PasswordHash == "rahasia1" {
		t.Fatal("password stored in plain text")
	}

	claims, err := auth.VerifyToken("test-secret", token)
	if err != nil {
		t.Fatalf("verify register token: %v", err)
	}
	if id, _ := auth.UserIDFromClaims(claims); id != user.ID {
		t.Fatalf("token user_id = %d, want %d", id, user.ID)
	}

	if _, _, err := svc.Login("budi@test.id", "rahasia1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, _, err := svc.Login("budi@test.id", "salah"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: err = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, _, err := svc.Login("tidak@ada.id", "rahasia1"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: err = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret")

	if _, _, err := svc.Register("budi@test.id", "rahasia1", "Budi", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register("budi@test.id", "rahasia2", "Budi Lain", ""); err != ErrEmailTaken {
		t.Fatalf("err = %v, want %v", err, ErrEmailTaken)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAuthService(userRepo, "test-secret")

	user, _, err := svc.Register("budi@test.id", "rahasia1", "Budi", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user.IsActive = false
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, _, err := svc.Login("budi@test.id", "rahasia1"); err != ErrInvalidCredentials {
		t.Fatalf("inactive login: err = %v, want %v", err, ErrInvalidCredentials)
	}
}
