package services

import (
	"errors"
	"testing"

	"github.com/gamescape/gamescape-be/internal/models"
	"github.com/gamescape/gamescape-be/internal/store"
)

func newUserService() (*UserService, *store.Memory) {
	memory := store.NewMemory()
	return NewUserService(memory.Users), memory
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	service, memory := newUserService()

	user, err := service.Register("alice", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() did not assign an ID")
	}
	if user.PasswordHash != "" {
		t.Error("Register() returned the password hash")
	}

	stored, err := memory.Users.FindByEmail("a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if stored.PasswordHash == "pw1" {
		t.Error("stored password equals the submitted plaintext")
	}
	if stored.PasswordHash == "" {
		t.Error("stored password hash is empty")
	}
	if stored.IsAdmin {
		t.Error("Register() created an admin account")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name                      string
		username, email, password string
	}{
		{name: "missing username", email: "a@x.com", password: "pw1"},
		{name: "missing email", username: "alice", password: "pw1"},
		{name: "missing password", username: "alice", email: "a@x.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _ := newUserService()
			_, err := service.Register(test.username, test.email, test.password)
			var validationErr *models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Register() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newUserService()

	if _, err := service.Register("alice", "a@x.com", "pw1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := service.Register("alice2", "a@x.com", "pw2"); !errors.Is(err, models.ErrDuplicateEmail) {
		t.Errorf("second Register() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service, _ := newUserService()
	if _, err := service.Register("alice", "a@x.com", "pw1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := service.Authenticate("a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("Authenticate() = %+v, want alice's claims", user)
	}
	if user.PasswordHash != "" {
		t.Error("Authenticate() returned the password hash")
	}

	// Unknown email and wrong password yield the same error.
	if _, err := service.Authenticate("a@x.com", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := service.Authenticate("nobody@x.com", "pw1"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfileStripsRoleChange(t *testing.T) {
	service, _ := newUserService()
	created, err := service.Register("alice", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	username := "alice2"
	isAdmin := true
	updated, err := service.UpdateProfile(created.ID, models.UserUpdate{Username: &username, IsAdmin: &isAdmin})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Username != "alice2" {
		t.Errorf("username = %q, want %q", updated.Username, "alice2")
	}
	if updated.IsAdmin {
		t.Error("UpdateProfile() allowed a role escalation")
	}
}

func TestUpdateProfileEmptyUpdate(t *testing.T) {
	service, _ := newUserService()
	created, err := service.Register("alice", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err = service.UpdateProfile(created.ID, models.UserUpdate{})
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("UpdateProfile() error = %v, want ValidationError", err)
	}
}

func TestAdminCreateAndListUsers(t *testing.T) {
	service, _ := newUserService()

	admin, err := service.AdminCreate("root", "root@x.com", "pw1", true)
	if err != nil {
		t.Fatalf("AdminCreate() error = %v", err)
	}
	if !admin.IsAdmin {
		t.Error("AdminCreate() did not set the admin role")
	}
	if _, err := service.Register("alice", "a@x.com", "pw1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	users, err := service.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}
	for _, user := range users {
		if user.PasswordHash != "" {
			t.Errorf("ListUsers() leaked the password hash for %s", user.Email)
		}
	}
}

func TestAdminDelete(t *testing.T) {
	service, memory := newUserService()
	admin, err := service.AdminCreate("root", "root@x.com", "pw1", true)
	if err != nil {
		t.Fatalf("AdminCreate() error = %v", err)
	}
	target, err := service.Register("alice", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Self-deletion is rejected.
	var validationErr *models.ValidationError
	if err := service.AdminDelete(admin.ID, admin.ID); !errors.As(err, &validationErr) {
		t.Errorf("self AdminDelete() error = %v, want ValidationError", err)
	}

	// Deleting another account cascades to their collection.
	if _, err := memory.Collections.Insert(models.CollectedGame{UserID: target.ID, GameID: 42, Title: "Game A"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := service.AdminDelete(admin.ID, target.ID); err != nil {
		t.Fatalf("AdminDelete() error = %v", err)
	}
	if _, err := service.GetByID(target.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	entries, err := memory.Collections.ListByUser(target.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("collection entries survived the user deletion: %d left", len(entries))
	}

	// Deleting an unknown user is a not-found.
	if err := service.AdminDelete(admin.ID, "ghost"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("AdminDelete(ghost) error = %v, want ErrNotFound", err)
	}
}
