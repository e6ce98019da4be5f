// AngelaMos | 2026
// service.go

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/streamvault/internal/core"
	"github.com/angelamos/streamvault/internal/movie"
)

var (
	ErrNoValidRows    = errors.New("no valid rows")
	ErrAllDuplicates  = errors.New("all titles are duplicates")
	ErrUnparsableFile = errors.New("unparsable file")
)

// MovieStore is the slice of the movie store the ingestion pipeline needs.
type MovieStore interface {
	ExistingTitles(ctx context.Context, titles []string) ([]string, error)
	InsertMany(ctx context.Context, movies []*movie.Movie) error
}

// Service runs the bulk ingestion pipeline: parse, reconcile against the
// store by exact title, insert the survivors, report the skips.
type Service struct {
	store  MovieStore
	logger *slog.Logger
}

func NewService(store MovieStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// IngestError carries the duplicate titles alongside an all-duplicates
// refusal so the handler can report them.
type IngestError struct {
	Err        error
	Duplicates []string
}

func (e *IngestError) Error() string { return e.Err.Error() }

func (e *IngestError) Unwrap() error { return e.Err }

// IngestCSV parses the upload and persists every candidate whose title is
// not already in the store. Candidates sharing a title within the same file
// are only checked against the store, not against each other.
func (s *Service) IngestCSV(ctx context.Context, file io.Reader) (*BulkResult, error) {
	candidates, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparsableFile, err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoValidRows
	}

	return s.reconcileAndInsert(ctx, candidates)
}

func (s *Service) reconcileAndInsert(
	ctx context.Context,
	candidates []Candidate,
) (*BulkResult, error) {
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}

	existing, err := s.store.ExistingTitles(ctx, titles)
	if err != nil {
		return nil, err
	}

	existingSet := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		existingSet[t] = struct{}{}
	}

	var (
		accepted   []*movie.Movie
		duplicates []string
	)
	for _, c := range candidates {
		if _, dup := existingSet[c.Title]; dup {
			duplicates = append(duplicates, c.Title)
			continue
		}
		accepted = append(accepted, candidateToMovie(c))
	}

	if len(accepted) == 0 {
		return nil, &IngestError{Err: ErrAllDuplicates, Duplicates: duplicates}
	}

	if err := s.store.InsertMany(ctx, accepted); err != nil {
		return nil, err
	}

	s.logger.Info("bulk ingest complete",
		"inserted", len(accepted),
		"skipped", len(duplicates),
	)

	inserted := make([]movie.MovieResponse, len(accepted))
	for i, m := range accepted {
		inserted[i] = movie.ToMovieResponse(m)
	}

	result := &BulkResult{
		Success: true,
		Count:   len(accepted),
		Movies:  inserted,
	}
	if len(duplicates) > 0 {
		result.Warning = fmt.Sprintf("%d duplicate(s) skipped: %s",
			len(duplicates), strings.Join(duplicates, ", "))
		result.Duplicates = duplicates
	}

	return result, nil
}

// IngestJSON persists the given records without duplicate reconciliation.
func (s *Service) IngestJSON(
	ctx context.Context,
	reqs []movie.CreateMovieRequest,
) (*BulkResult, error) {
	movies := make([]*movie.Movie, len(reqs))
	for i, req := range reqs {
		m := &movie.Movie{
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
			m.VideoType = movie.VideoTypeDirect
		}
		if m.Categories == nil {
			m.Categories = core.StringList{}
		}
		movies[i] = m
	}

	if err := s.store.InsertMany(ctx, movies); err != nil {
		return nil, err
	}

	s.logger.Info("bulk json ingest complete", "inserted", len(movies))

	inserted := make([]movie.MovieResponse, len(movies))
	for i, m := range movies {
		inserted[i] = movie.ToMovieResponse(m)
	}

	return &BulkResult{
		Success: true,
		Count:   len(movies),
		Movies:  inserted,
	}, nil
}

func candidateToMovie(c Candidate) *movie.Movie {
	categories := core.StringList(c.Categories)
	if categories == nil {
		categories = core.StringList{}
	}

	return &movie.Movie{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		Poster:      c.Poster,
		VideoURL:    c.VideoURL,
		VideoType:   c.VideoType,
		Categories:  categories,
		BatchNo:     c.BatchNo,
		Duration:    c.Duration,
		Featured:    c.Featured,
		IsPremium:   c.IsPremium,
	}
}
