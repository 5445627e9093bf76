package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/sangkips/investify-receiving/pkg/utils"
)

const minPasswordLength = 8

// UserService onboards desk operators
type UserService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	locationRepo repository.LocationRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	locationRepo repository.LocationRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		locationRepo: locationRepo,
	}
}

// CreateOperatorInput represents the create operator input
type CreateOperatorInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        string
	LocationIDs []uuid.UUID
}

// CreateOperator creates a user with one role and access to the given locations
func (s *UserService) CreateOperator(ctx context.Context, input *CreateOperatorInput) (*entity.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)

	var fieldErrors []apperror.FieldError
	if input.FirstName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "first_name", Message: "First name is required"})
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if len(input.Password) < minPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if len(input.LocationIDs) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "locations", Message: "At least one location is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A user with this email already exists")
	}

	role, err := s.roleRepo.GetByName(ctx, input.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}

	for _, id := range input.LocationIDs {
		location, err := s.locationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, apperror.NewNotFoundError("Location")
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	username, _, _ := strings.Cut(input.Email, "@")
	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  strings.TrimSpace(input.LastName),
		Username:  username,
		Email:     input.Email,
		Password:  hashed,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, errors.Wrapf(err, "assign role %s", role.Name)
	}
	for _, id := range input.LocationIDs {
		if err := s.locationRepo.AddMember(ctx, &entity.LocationMembership{LocationID: id, UserID: user.ID}); err != nil {
			return nil, errors.Wrapf(err, "add member to location %s", id)
		}
	}

	user.Roles = []entity.Role{*role}
	return user, nil
}
