package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/service"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events []event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) names() []event.Name {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Name, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name)
	}
	return out
}

type fixture struct {
	repo   *memory.UserRepository
	ds     *service.UserDomainService
	pub    *recordingPublisher
	users  *application.UserService
	ctx    context.Context
	johnID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: memory.NewUserRepository(memory.NewStore()),
		ds:   service.NewUserDomainService(bcrypt.MinCost),
		pub:  &recordingPublisher{},
		ctx:  context.Background(),
	}
	f.users = application.NewUserService(f.repo, f.ds, f.pub, nil, nil)

	john, err := f.users.Create(f.ctx, application.CreateUserInput{
		FirstName: "John", LastName: "Doe", Username: "JohnDoe", Password: "password123", Role: "user",
	})
	require.NoError(t, err)
	f.johnID = john.ID
	return f
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	f := newFixture(t)

	got, err := f.users.Get(f.ctx, f.johnID)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", got.Username)
	assert.Equal(t, "user", got.Role)
	assert.True(t, got.IsActive)
	assert.Equal(t, []event.Name{event.UserCreated}, f.pub.names())

	stored, err := f.repo.FindByID(f.ctx, f.johnID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash())
	assert.True(t, f.ds.ComparePasswords("password123", stored.PasswordHash()))
}

func TestCreate_DuplicateIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(f.ctx, application.CreateUserInput{
		FirstName: "Other", LastName: "Person", Username: "JOHNDOE", Password: "password123", Role: "user",
	})

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindDuplicate, de.Kind)
	assert.Equal(t, "User with username johndoe already exists", de.Message)
	assert.Equal(t, map[string]any{"resource": "User", "field": "username", "value": "johndoe"}, de.Details)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		in   application.CreateUserInput
	}{
		{"short username", application.CreateUserInput{FirstName: "Ann", LastName: "Lee", Username: "ab", Password: "password123", Role: "user"}},
		{"bad name", application.CreateUserInput{FirstName: "A1", LastName: "Lee", Username: "annlee", Password: "password123", Role: "user"}},
		{"short password", application.CreateUserInput{FirstName: "Ann", LastName: "Lee", Username: "annlee", Password: "12345", Role: "user"}},
		{"unknown role", application.CreateUserInput{FirstName: "Ann", LastName: "Lee", Username: "annlee", Password: "password123", Role: "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Create(f.ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	n, _ := f.repo.Count(f.ctx)
	assert.Equal(t, 1, n)
}

type userRepoMock struct {
	mock.Mock
	repository.UserRepository
}

func (m *userRepoMock) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *userRepoMock) Save(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func TestCreate_DuplicateNeverWrites(t *testing.T) {
	r := new(userRepoMock)
	r.On("ExistsByUsername", mock.Anything, "johndoe").Return(true, nil).Once()
	pub := &recordingPublisher{}
	svc := application.NewUserService(r, service.NewUserDomainService(bcrypt.MinCost), pub, nil, nil)

	_, err := svc.Create(context.Background(), application.CreateUserInput{
		FirstName: "John", LastName: "Doe", Username: "johndoe", Password: "password123", Role: "user",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	r.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	r.AssertExpectations(t)
	assert.Empty(t, pub.names())
}

func TestUpdate_PartialFields(t *testing.T) {
	f := newFixture(t)

	got, err := f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{LastName: ptr("Smith")})
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, "Smith", got.LastName)
	assert.Equal(t, "johndoe", got.Username)
	assert.Equal(t, "user", got.Role)
	assert.True(t, got.IsActive)
}

func TestUpdate_PasswordOnlyWhenSupplied(t *testing.T) {
	f := newFixture(t)
	before, _ := f.repo.FindByID(f.ctx, f.johnID)

	_, err := f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{Role: ptr("editor")})
	require.NoError(t, err)
	after, _ := f.repo.FindByID(f.ctx, f.johnID)
	assert.Equal(t, before.PasswordHash(), after.PasswordHash())

	_, err = f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{Password: ptr("newpassword")})
	require.NoError(t, err)
	after, _ = f.repo.FindByID(f.ctx, f.johnID)
	assert.True(t, f.ds.ComparePasswords("newpassword", after.PasswordHash()))
	assert.ErrorIs(t, f.ds.ValidateCredentials(after, "password123"), domain.ErrInvalidCredentials)
}

func TestUpdate_Username(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Create(f.ctx, application.CreateUserInput{
		FirstName: "Jane", LastName: "Roe", Username: "janeroe", Password: "password123", Role: "user",
	})
	require.NoError(t, err)

	// same username with different case is not a conflict with itself
	_, err = f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{Username: ptr("JohnDoe")})
	require.NoError(t, err)

	_, err = f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{Username: ptr("JaneRoe")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{Username: ptr("john_d")})
	require.NoError(t, err)
	assert.Equal(t, "john_d", got.Username)
}

func TestUpdate_ActiveFlagAndEvents(t *testing.T) {
	f := newFixture(t)

	got, err := f.users.Update(f.ctx, f.johnID, application.UpdateUserInput{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, []event.Name{event.UserCreated, event.UserUpdated}, f.pub.names())
}

func TestUpdate_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Update(f.ctx, "missing", application.UpdateUserInput{FirstName: ptr("Ann")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "User with identifier missing not found", err.Error())
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	id, err := f.users.Delete(f.ctx, f.johnID)
	require.NoError(t, err)
	assert.Equal(t, f.johnID, id)

	_, err = f.users.Get(f.ctx, f.johnID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []event.Name{event.UserCreated, event.UserDeleted}, f.pub.names())

	_, err = f.users.Delete(f.ctx, f.johnID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Create(f.ctx, application.CreateUserInput{
		FirstName: "Alice", LastName: "Zed", Username: "alice", Password: "password123", Role: "editor",
	})
	require.NoError(t, err)

	all, err := f.users.GetAll(f.ctx, application.UserQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].FirstName)

	editors, err := f.users.GetAll(f.ctx, application.UserQuery{Role: "editor"})
	require.NoError(t, err)
	require.Len(t, editors, 1)

	_, err = f.users.GetAll(f.ctx, application.UserQuery{Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)

	created, err := f.users.EnsureAdmin(f.ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.users.EnsureAdmin(f.ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := f.repo.FindByUsername(f.ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.Role().IsAdmin())
}

func TestSearch_WithoutSearcher(t *testing.T) {
	f := newFixture(t)

	hits, err := f.users.Search(f.ctx, "john", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}
