package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository with just enough query
// support to exercise the service layer.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, q ports.ListUsersQuery) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if q.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(q.Username)) {
			continue
		}
		if q.Age != nil && u.Age != *q.Age {
			continue
		}
		if q.MinAge != nil && u.Age < *q.MinAge {
			continue
		}
		if q.MaxAge != nil && u.Age > *q.MaxAge {
			continue
		}
		matched = append(matched, cloneUser(u))
	}

	sort.Slice(matched, func(i, j int) bool {
		var less bool
		if q.SortBy == "age" {
			less = matched[i].Age < matched[j].Age
		} else {
			less = matched[i].Username < matched[j].Username
		}
		if q.SortAsc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(ev domain.AuditEvent) {
	a.events = append(a.events, ev)
}

func newUserService(repo *stubUserRepo, policy Policy) (*UserService, *stubAudit) {
	audit := &stubAudit{}
	svc := NewUserService(repo, NewPasswordHasher(4), policy, audit, zerolog.Nop())
	return svc, audit
}

func adminCaller() ports.Identity {
	return ports.Identity{UserID: "admin-1", Role: domain.RoleAdmin, Authenticated: true}
}

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, audit := newUserService(repo, Policy{})

	user, err := svc.Create(context.Background(), adminCaller(), ports.CreateUserInput{
		Username: "alice",
		Password: "secret1",
		Age:      30,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role should default to user, got %s", user.Role)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}

	hasher := NewPasswordHasher(4)
	if !hasher.Verify("secret1", user.PasswordHash) {
		t.Fatalf("stored hash does not verify against plaintext")
	}
	if hasher.Verify("other", user.PasswordHash) {
		t.Fatalf("wrong plaintext verified")
	}

	if len(audit.events) != 1 || audit.events[0].Action != "user.create" {
		t.Fatalf("expected one user.create audit event, got %+v", audit.events)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	cases := []ports.CreateUserInput{
		{Username: "al", Password: "secret1", Age: 30},
		{Username: "alice", Password: "short", Age: 30},
		{Username: "alice", Password: "secret1", Age: 0},
		{Username: "alice", Password: "secret1", Age: -5},
		{Username: "alice", Password: "secret1", Age: 30, Role: "superadmin"},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, adminCaller(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "bob", Password: "secret1", Age: 20}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "bob", Password: "secret2", Age: 21}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_ForbiddenForNonAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})

	caller := ports.Identity{UserID: "u1", Role: domain.RoleUser, Authenticated: true}
	if _, err := svc.Create(context.Background(), caller, ports.CreateUserInput{Username: "eve", Password: "secret1", Age: 20}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Update_PartialLeavesOtherFields(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, err := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "carol", Password: "secret1", Age: 40})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	originalHash := repo.users[created.ID].PasswordHash

	newAge := 41
	updated, err := svc.Update(ctx, adminCaller(), created.ID, ports.UpdateUserInput{Age: &newAge})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Age != 41 {
		t.Fatalf("age not updated: %d", updated.Age)
	}
	if updated.Username != "carol" {
		t.Fatalf("username changed by partial update: %s", updated.Username)
	}
	if repo.users[created.ID].PasswordHash != originalHash {
		t.Fatalf("password hash changed by partial update")
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("role changed by partial update: %s", updated.Role)
	}
}

func TestUserService_UpdateSelf_StripsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, err := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "dave", Password: "secret1", Age: 25})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	self := ports.Identity{UserID: created.ID, Role: domain.RoleUser, Authenticated: true}
	admin := domain.RoleAdmin
	newAge := 26
	updated, err := svc.UpdateSelf(ctx, self, ports.UpdateUserInput{Role: &admin, Age: &newAge})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}

	if updated.Role != domain.RoleUser {
		t.Fatalf("role elevation succeeded: %s", updated.Role)
	}
	if repo.users[created.ID].Role != domain.RoleUser {
		t.Fatalf("stored role changed: %s", repo.users[created.ID].Role)
	}
	if updated.Age != 26 {
		t.Fatalf("rest of the update should still apply, age=%d", updated.Age)
	}
}

func TestUserService_Update_RoleOnlyBySelfIsNoFields(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "erin", Password: "secret1", Age: 30})
	self := ports.Identity{UserID: created.ID, Role: domain.RoleUser, Authenticated: true}

	admin := domain.RoleAdmin
	if _, err := svc.UpdateSelf(ctx, self, ports.UpdateUserInput{Role: &admin}); !errors.Is(err, domain.ErrNoFieldsToUpdate) {
		t.Fatalf("role-only self update should leave nothing to apply, got %v", err)
	}
	if repo.users[created.ID].Role != domain.RoleUser {
		t.Fatalf("stored role changed")
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "frank", Password: "secret1", Age: 30})

	newPass := "secret2"
	if _, err := svc.Update(ctx, adminCaller(), created.ID, ports.UpdateUserInput{Password: &newPass}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	hasher := NewPasswordHasher(4)
	stored := repo.users[created.ID].PasswordHash
	if stored == "secret2" {
		t.Fatalf("password stored in plaintext")
	}
	if !hasher.Verify("secret2", stored) {
		t.Fatalf("new password does not verify")
	}
	if hasher.Verify("secret1", stored) {
		t.Fatalf("old password still verifies")
	}
}

func TestUserService_Delete_NotFoundIsStable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "gina", Password: "secret1", Age: 30})

	if err := svc.Delete(ctx, adminCaller(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// Deleting again must report not found, both times.
	if err := svc.Delete(ctx, adminCaller(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second delete: expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, adminCaller(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("third delete: expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_ForbiddenForSelf(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, adminCaller(), ports.CreateUserInput{Username: "hank", Password: "secret1", Age: 30})
	self := ports.Identity{UserID: created.ID, Role: domain.RoleUser, Authenticated: true}

	if err := svc.Delete(ctx, self, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin self delete: expected ErrForbidden, got %v", err)
	}
}

func TestUserService_List_PaginationPartitions(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := svc.Create(ctx, adminCaller(), ports.CreateUserInput{
			Username: fmt.Sprintf("user-%02d", i),
			Password: "secret1",
			Age:      20 + i,
		}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	page1, err := svc.List(ctx, adminCaller(), ports.ListUsersParams{Skip: "0", Limit: "3", SortBy: "username"})
	if err != nil {
		t.Fatalf("list page 1 failed: %v", err)
	}
	page2, err := svc.List(ctx, adminCaller(), ports.ListUsersParams{Skip: "3", Limit: "3", SortBy: "username"})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}

	if page1.Total != 7 || page2.Total != 7 {
		t.Fatalf("totals should count all matches: %d, %d", page1.Total, page2.Total)
	}
	if len(page1.Users) != 3 || len(page2.Users) != 3 {
		t.Fatalf("unexpected page sizes: %d, %d", len(page1.Users), len(page2.Users))
	}

	seen := map[string]bool{}
	for _, u := range append(page1.Users, page2.Users...) {
		if seen[u.ID] {
			t.Fatalf("pages overlap at %s", u.ID)
		}
		seen[u.ID] = true
	}
	if page1.Users[2].Username >= page2.Users[0].Username {
		t.Fatalf("pages out of order: %s then %s", page1.Users[2].Username, page2.Users[0].Username)
	}
}

func TestUserService_List_InvalidSortSurfaces(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo, Policy{})

	_, err := svc.List(context.Background(), adminCaller(), ports.ListUsersParams{SortBy: "password_hash"})
	if !errors.Is(err, domain.ErrInvalidSortField) {
		t.Fatalf("expected ErrInvalidSortField, got %v", err)
	}
}
