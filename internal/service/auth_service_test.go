package service

import (
	"errors"
	"testing"

	ct "controlling_thermostat"
)

type fakeAuthRepo struct {
	users     map[string]ct.User
	createErr error
	nextID    int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string]ct.User{}, nextID: 1}
}

func (f *fakeAuthRepo) Create(username, passwordHash string) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.users[username] = ct.User{ID: id, Username: username, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeAuthRepo) GetByUsername(username string) (*ct.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func TestAuthService_SignUpAndToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	id, err := svc.SignUp("operator", "s3cret")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d", id)
	}
	if repo.users["operator"].PasswordHash == "s3cret" {
		t.Fatal("password stored in clear")
	}

	token, err := svc.GenerateToken("operator", "s3cret")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	userID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != id {
		t.Fatalf("parsed user id = %d, want %d", userID, id)
	}
}

func TestAuthService_RejectsEmptyPassword(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo())

	if _, err := svc.SignUp("operator", "   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

func TestAuthService_WrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	if _, err := svc.SignUp("operator", "s3cret"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := svc.GenerateToken("operator", "nope"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo())

	if _, err := svc.GenerateToken("ghost", "whatever"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ParseGarbageToken(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo())

	if _, err := svc.ParseToken("not.a.jwt"); err == nil {
		t.Fatal("expected parse error")
	}
}
