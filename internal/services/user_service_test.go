package services

import (
	"context"
	"testing"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/validator"
)

func newUserFixture() (*MockRepository, UserService) {
	repo := NewMockRepository()
	service := NewUserService(nil, repo, testLogger(), validator.New())
	return repo, service
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with hashed password", func(t *testing.T) {
		_, service := newUserFixture()

		user, err := service.Register(ctx, &RegisterRequest{
			Name:     "Mr. Ito",
			Email:    "ito@example.com",
			Password: "chalkboard",
			Role:     models.RoleTeacher,
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.ID == 0 {
			t.Error("expected a persisted user id")
		}
		if user.PasswordHash == "chalkboard" {
			t.Error("password must not be stored in plain text")
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo, service := newUserFixture()
		repo.AddUser(&models.User{Name: "Mr. Ito", Email: "ito@example.com", Role: models.RoleTeacher})

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Impostor",
			Email:    "ito@example.com",
			Password: "chalkboard",
			Role:     models.RoleTeacher,
		})
		if !IsConflictError(err) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, service := newUserFixture()

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Nobody",
			Email:    "nobody@example.com",
			Password: "chalkboard",
			Role:     "principal",
		})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, service UserService) *models.User {
		t.Helper()
		user, err := service.Register(ctx, &RegisterRequest{
			Name:     "Mr. Ito",
			Email:    "ito@example.com",
			Password: "chalkboard",
			Role:     models.RoleTeacher,
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		return user
	}

	t.Run("accepts valid credentials", func(t *testing.T) {
		_, service := newUserFixture()
		want := register(t, service)

		user, err := service.Authenticate(ctx, "ito@example.com", "chalkboard")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.ID != want.ID {
			t.Errorf("user id = %d, want %d", user.ID, want.ID)
		}
	})

	t.Run("same error for wrong password and unknown email", func(t *testing.T) {
		_, service := newUserFixture()
		register(t, service)

		_, wrongPass := service.Authenticate(ctx, "ito@example.com", "wrong")
		_, unknown := service.Authenticate(ctx, "ghost@example.com", "chalkboard")

		if !IsValidationError(wrongPass) || !IsValidationError(unknown) {
			t.Fatalf("expected validation errors, got %v and %v", wrongPass, unknown)
		}
		if wrongPass.Error() != unknown.Error() {
			t.Error("error messages should not reveal whether the email exists")
		}
	})
}
