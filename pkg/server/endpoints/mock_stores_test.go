package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/poseidoncap/refdata/pkg/model"
)

// MockCrudStore implements store.Crud[E] for testing using testify/mock
type MockCrudStore[E any] struct {
	mock.Mock
}

func NewMockCrudStore[E any]() *MockCrudStore[E] {
	return &MockCrudStore[E]{}
}

func (m *MockCrudStore[E]) Create(entity *E) error {
	args := m.Called(entity)
	return args.Error(0)
}

func (m *MockCrudStore[E]) Get(id uint) (*E, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockCrudStore[E]) List(limit int) ([]E, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockCrudStore[E]) Update(entity *E) error {
	args := m.Called(entity)
	return args.Error(0)
}

func (m *MockCrudStore[E]) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUsersStore implements store.UsersStore for testing
type MockUsersStore struct {
	MockCrudStore[model.User]
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockProvider implements identity.Provider for testing
type MockProvider struct {
	mock.Mock
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) CreateUser(user *model.User, password string) error {
	args := m.Called(user, password)
	return args.Error(0)
}

func (m *MockProvider) VerifyCredential(username, password string) (*model.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProvider) SetPassword(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}

func (m *MockProvider) EnsureRole(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockProvider) AssignRole(userID uint, roleName string) error {
	args := m.Called(userID, roleName)
	return args.Error(0)
}

func (m *MockProvider) RolesOf(userID uint) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProvider) IsMember(userID uint, roleName string) (bool, error) {
	args := m.Called(userID, roleName)
	return args.Bool(0), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
