// AngelaMos | 2026
// service.go

package movie

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/streamvault/internal/core"
)

type Service struct {
	repo      Repository
	listLimit int
}

func NewService(repo Repository, listLimit int) *Service {
	return &Service{repo: repo, listLimit: listLimit}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Movie, error) {
	if filter.Limit <= 0 || filter.Limit > s.listLimit {
		filter.Limit = s.listLimit
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Movie, error) {
	return s.repo.GetByID(ctx, id)
}

// CheckAccess applies the category gate: access is granted iff the movie's
// category set intersects the caller's subscribed categories. The
// subscription tier value is not consulted.
func (s *Service) CheckAccess(
	ctx context.Context,
	movieID string,
	subscribedCategories core.StringList,
) (*AccessResponse, error) {
	m, err := s.repo.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if subscribedCategories.IntersectsWith(m.Categories) {
		return &AccessResponse{
			HasAccess: true,
			Reason:    ReasonCategorySubscription,
		}, nil
	}

	return &AccessResponse{
		HasAccess: false,
		Reason:    ReasonNoCategoryAccess,
	}, nil
}

// Create persists a single movie. Unlike bulk ingestion, single creation
// performs no duplicate-title check.
func (s *Service) Create(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	m := &Movie{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Poster:      req.Poster,
		VideoURL:    req.VideoURL,
		VideoType:   req.VideoType,
		Categories:  core.StringList(req.Categories),
		BatchNo:     req.BatchNo,
		Duration:    req.Duration,
		Featured:    req.Featured,
		IsPremium:   req.IsPremium,
	}
	if m.VideoType == "" {
		m.VideoType = VideoTypeDirect
	}
	if m.Categories == nil {
		m.Categories = core.StringList{}
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateMovieRequest) (*Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Poster != nil {
		m.Poster = *req.Poster
	}
	if req.VideoURL != nil {
		m.VideoURL = *req.VideoURL
	}
	if req.VideoType != nil {
		m.VideoType = *req.VideoType
	}
	if req.Categories != nil {
		m.Categories = core.StringList(req.Categories)
	}
	if req.BatchNo != nil {
		m.BatchNo = *req.BatchNo
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.Featured != nil {
		m.Featured = *req.Featured
	}
	if req.IsPremium != nil {
		m.IsPremium = *req.IsPremium
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}
