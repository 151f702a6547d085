package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/repository"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error)
	GetEntity(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	List(ctx context.Context, filter dto.UserListFilter) ([]dto.UserResponse, error)
	Update(ctx context.Context, userID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, actingUser dto.AuthUser) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperror.FieldsDoNotMatch("password")
	}
	if req.Email != req.ConfirmEmail {
		return nil, apperror.FieldsDoNotMatch("email")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.EntityCreateFailed("user")
	}

	role := entity.RoleRegular
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	user := &entity.User{
		Nickname:     req.Nickname,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Description:  req.Description,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "nickname or email already in use", apperror.ErrBadRequest)
		}
		return nil, apperror.EntityCreateFailed("user")
	}

	resp := dto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.GetEntity(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.UserNotFound(fmt.Sprintf("user with email %s not found", email))
		}
		return nil, err
	}
	resp := dto.NewUserResponse(*user)
	return &resp, nil
}

// GetEntity resolves a raw user row. Other services use it to validate that
// a referenced user exists.
func (s *userService) GetEntity(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.UserNotFound(fmt.Sprintf("user with id %s not found", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filter dto.UserListFilter) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses, nil
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.GetEntity(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actingUser.UserID != userID && !actingUser.IsAdmin() {
		return nil, apperror.SelfOrAdminRequired("user update")
	}

	if req.NewEmail != nil {
		if req.ConfirmEmail == nil || *req.NewEmail != *req.ConfirmEmail {
			return nil, apperror.FieldsDoNotMatch("email")
		}
		user.Email = *req.NewEmail
	}
	if req.NewPassword != nil {
		if req.ConfirmPassword == nil || *req.NewPassword != *req.ConfirmPassword {
			return nil, apperror.FieldsDoNotMatch("password")
		}
		hash, err := HashPassword(*req.NewPassword)
		if err != nil {
			return nil, apperror.EntityUpdateFailed("user")
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !actingUser.IsAdmin() {
			return nil, apperror.AdminRequired("role change")
		}
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Description != nil {
		user.Description = req.Description
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "nickname or email already in use", apperror.ErrBadRequest)
		}
		return nil, apperror.EntityUpdateFailed("user")
	}

	resp := dto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID, actingUser dto.AuthUser) error {
	if _, err := s.GetEntity(ctx, userID); err != nil {
		return err
	}
	if actingUser.UserID != userID && !actingUser.IsAdmin() {
		return apperror.SelfOrAdminRequired("user deletion")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return apperror.EntityDeleteFailed("user")
	}
	return nil
}
