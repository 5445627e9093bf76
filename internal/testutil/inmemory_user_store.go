package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
)

// InMemoryUserStore implements repository.UserRepository and
// repository.RoleRepository
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
	roles []entity.Role
}

// NewInMemoryUserStore creates a store that knows the given roles
func NewInMemoryUserStore(roles ...entity.Role) *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[uuid.UUID]*entity.User),
		roles: roles,
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *InMemoryUserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *InMemoryUserStore) GetWithRoles(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (s *InMemoryUserStore) AssignRole(_ context.Context, userID uuid.UUID, roleID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	role, ok := lo.Find(s.roles, func(r entity.Role) bool { return r.ID == roleID })
	if ok && !u.HasRole(role.Name) {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

func (s *InMemoryUserStore) GetByName(_ context.Context, name string) (*entity.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := lo.Find(s.roles, func(r entity.Role) bool { return r.Name == name })
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (s *InMemoryUserStore) List(_ context.Context) ([]entity.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Role(nil), s.roles...), nil
}

// InMemoryLocationStore implements repository.LocationRepository
type InMemoryLocationStore struct {
	mu          sync.RWMutex
	locations   map[uuid.UUID]entity.Location
	memberships map[uuid.UUID][]uuid.UUID
}

// NewInMemoryLocationStore creates a store holding locations
func NewInMemoryLocationStore(locations ...entity.Location) *InMemoryLocationStore {
	s := &InMemoryLocationStore{
		locations:   make(map[uuid.UUID]entity.Location, len(locations)),
		memberships: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, l := range locations {
		s.locations[l.ID] = l
	}
	return s
}

func (s *InMemoryLocationStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *InMemoryLocationStore) ListForUser(_ context.Context, userID uuid.UUID) ([]entity.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.Location{}
	for _, id := range s.memberships[userID] {
		out = append(out, s.locations[id])
	}
	return out, nil
}

func (s *InMemoryLocationStore) AddMember(_ context.Context, membership *entity.LocationMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !lo.Contains(s.memberships[membership.UserID], membership.LocationID) {
		s.memberships[membership.UserID] = append(s.memberships[membership.UserID], membership.LocationID)
	}
	return nil
}

func (s *InMemoryLocationStore) IsMember(_ context.Context, locationID, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Contains(s.memberships[userID], locationID), nil
}
