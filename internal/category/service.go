// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/streamvault/internal/core"
)

var ErrNameTaken = errors.New("category name already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)

	// Name collisions surface here; the unique index still catches races.
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	c := &Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Thumbnail:   req.Thumbnail,
		IsPremium:   req.IsPremium,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Thumbnail != nil {
		c.Thumbnail = *req.Thumbnail
	}
	if req.IsPremium != nil {
		c.IsPremium = *req.IsPremium
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}
