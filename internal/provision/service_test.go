package provision

import (
	"errors"
	"testing"

	"scraptrack-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeIdentityStore struct {
	nextID    uint
	created   []uint
	deleted   []uint
	lastHash  string
	createErr error
	deleteErr error
}

func (f *fakeIdentityStore) CreateIdentity(email, passwordHash, fullName string, role models.UserRole) (uint, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created = append(f.created, f.nextID)
	f.lastHash = passwordHash
	return f.nextID, nil
}

func (f *fakeIdentityStore) DeleteIdentity(id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProfileStore struct {
	profiles  []models.UserProfile
	insertErr error
}

func (f *fakeProfileStore) CreateProfile(p *models.UserProfile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.profiles = append(f.profiles, *p)
	return nil
}

func validRequest() Request {
	return Request{
		Email:      "operator@factory.example",
		Password:   "s3cret99",
		FullName:   "Test Operator",
		Role:       "operator",
		Department: "cutting",
		EmployeeID: "EMP-042",
		Username:   "toperator",
		Shift:      "morning",
	}
}

func newTestService() (*Service, *fakeIdentityStore, *fakeProfileStore) {
	ids := &fakeIdentityStore{}
	profiles := &fakeProfileStore{}
	return &Service{Identities: ids, Profiles: profiles}, ids, profiles
}

func TestCreateUserSuccess(t *testing.T) {
	svc, ids, profiles := newTestService()

	userID, err := svc.CreateUser(validRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if userID == 0 {
		t.Fatal("expected a non-zero user id")
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles.profiles))
	}

	p := profiles.profiles[0]
	if p.UserID != userID {
		t.Fatalf("profile keyed by %d, identity is %d", p.UserID, userID)
	}
	if !p.IsActive {
		t.Fatal("expected the profile to default to active")
	}

	// The password is stored hashed, never verbatim.
	if err := bcrypt.CompareHashAndPassword([]byte(ids.lastHash), []byte("s3cret99")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing email", func(r *Request) { r.Email = "" }, ErrMissingFields},
		{"missing password", func(r *Request) { r.Password = "" }, ErrMissingFields},
		{"missing role", func(r *Request) { r.Role = "" }, ErrMissingFields},
		{"missing employee id", func(r *Request) { r.EmployeeID = "  " }, ErrMissingFields},
		{"missing username", func(r *Request) { r.Username = "" }, ErrMissingFields},
		{"short password", func(r *Request) { r.Password = "abc12" }, ErrPasswordTooShort},
		{"unknown role", func(r *Request) { r.Role = "superuser" }, ErrInvalidRole},
	}

	for _, tc := range cases {
		svc, ids, _ := newTestService()
		req := validRequest()
		tc.mutate(&req)

		_, err := svc.CreateUser(req)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if len(ids.created) != 0 {
			t.Fatalf("%s: identity was created despite invalid input", tc.name)
		}
	}
}

func TestCreateUserAuthFailure(t *testing.T) {
	svc, ids, profiles := newTestService()
	ids.createErr = errors.New("provider unreachable")

	_, err := svc.CreateUser(validRequest())
	if !errors.Is(err, ErrAuthCreate) {
		t.Fatalf("expected ErrAuthCreate, got %v", err)
	}
	if len(profiles.profiles) != 0 {
		t.Fatal("profile was inserted without an identity")
	}
}

func TestProfileFailureCompensatesIdentity(t *testing.T) {
	svc, ids, profiles := newTestService()
	profiles.insertErr = errors.New("duplicate employee id")

	_, err := svc.CreateUser(validRequest())
	if !errors.Is(err, ErrProfileInsert) {
		t.Fatalf("expected ErrProfileInsert, got %v", err)
	}

	if len(ids.created) != 1 {
		t.Fatalf("expected exactly one identity create, got %d", len(ids.created))
	}
	if len(ids.deleted) != 1 || ids.deleted[0] != ids.created[0] {
		t.Fatalf("expected the created identity %v to be compensated, deleted: %v", ids.created, ids.deleted)
	}
}

func TestCompensationFailureStillReportsInsertError(t *testing.T) {
	svc, ids, profiles := newTestService()
	profiles.insertErr = errors.New("insert failed")
	ids.deleteErr = errors.New("delete failed too")

	_, err := svc.CreateUser(validRequest())
	if !errors.Is(err, ErrProfileInsert) {
		t.Fatalf("expected ErrProfileInsert even when compensation fails, got %v", err)
	}
}
