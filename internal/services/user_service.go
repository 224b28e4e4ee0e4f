package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maozinhas/api/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
	now      func() time.Time
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (us *UserService) CreateSeeker(ctx context.Context, in models.CreateSeekerInput) (*models.Seeker, error) {
	in.Normalize()
	if err := models.Validate.Struct(in); err != nil {
		return nil, models.ValidationErrorf("invalid user data provided: %v", err)
	}

	exists, err := us.userRepo.UserEmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %s is already registered: %w", in.Email, models.ErrConflict)
	}

	user, err := us.userRepo.InsertUser(ctx, models.NewSeeker(in, us.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id string) (*models.Seeker, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ValidationErrorf("user id cannot be empty")
	}
	user, err := us.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return user, nil
}

func (us *UserService) GetByAuthID(ctx context.Context, uid string) (*models.Seeker, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, models.ValidationErrorf("uid cannot be empty")
	}
	user, err := us.userRepo.FindUserByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with uid %s: %w", uid, models.ErrNotFound)
	}
	return user, nil
}

func (us *UserService) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.Seeker, error) {
	patch.Normalize()
	if patch.IsEmpty() {
		return nil, models.ValidationErrorf("no data to update")
	}
	if err := models.Validate.Struct(patch); err != nil {
		return nil, models.ValidationErrorf("invalid user data provided: %v", err)
	}
	return us.userRepo.UpdateUser(ctx, id, patch, us.now())
}

// AddSearch records a search in the seeker's history.
func (us *UserService) AddSearch(ctx context.Context, id string, category models.Category, postalCode string) error {
	if !models.IsValidCategory(string(category)) {
		return models.ValidationErrorf("invalid category %q", category)
	}
	now := us.now()
	entry := models.SearchEntry{
		Category:   category,
		PostalCode: strings.TrimSpace(postalCode),
		Timestamp:  now,
	}
	return us.userRepo.AppendSearchHistory(ctx, id, entry, now)
}

// SearchHistory is empty for unknown users and for non-seekers.
func (us *UserService) SearchHistory(ctx context.Context, id string) ([]models.SearchEntry, error) {
	user, err := us.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsSeeker() || user.SearchHistory == nil {
		return []models.SearchEntry{}, nil
	}
	return user.SearchHistory, nil
}
