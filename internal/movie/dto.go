// AngelaMos | 2026
// dto.go

package movie

import (
	"time"

	"github.com/angelamos/streamvault/internal/core"
)

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=300"`
	Description string   `json:"description" validate:"max=2000"`
	Poster      string   `json:"poster" validate:"omitempty,url"`
	VideoURL    string   `json:"video_url" validate:"omitempty,url"`
	VideoType   string   `json:"video_type" validate:"omitempty,oneof=direct youtube"`
	Categories  []string `json:"categories" validate:"omitempty,dive,min=1,max=100"`
	BatchNo     string   `json:"batch_no" validate:"max=100"`
	Duration    string   `json:"duration" validate:"max=50"`
	Featured    bool     `json:"featured"`
	IsPremium   bool     `json:"is_premium"`
}

type UpdateMovieRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Poster      *string  `json:"poster" validate:"omitempty,url"`
	VideoURL    *string  `json:"video_url" validate:"omitempty,url"`
	VideoType   *string  `json:"video_type" validate:"omitempty,oneof=direct youtube"`
	Categories  []string `json:"categories" validate:"omitempty,dive,min=1,max=100"`
	BatchNo     *string  `json:"batch_no" validate:"omitempty,max=100"`
	Duration    *string  `json:"duration" validate:"omitempty,max=50"`
	Featured    *bool    `json:"featured"`
	IsPremium   *bool    `json:"is_premium"`
}

type MovieResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Poster      string          `json:"poster"`
	VideoURL    string          `json:"video_url"`
	VideoType   string          `json:"video_type"`
	Categories  core.StringList `json:"categories"`
	BatchNo     string          `json:"batch_no"`
	Duration    string          `json:"duration"`
	Featured    bool            `json:"featured"`
	IsPremium   bool            `json:"is_premium"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccessResponse reports whether the caller may watch a movie and why.
type AccessResponse struct {
	HasAccess bool   `json:"has_access"`
	Reason    string `json:"reason"`
}

const (
	ReasonCategorySubscription = "category-subscription"
	ReasonNoCategoryAccess     = "no-category-access"
)

func ToMovieResponse(m *Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Poster:      m.Poster,
		VideoURL:    m.VideoURL,
		VideoType:   m.VideoType,
		Categories:  m.Categories,
		BatchNo:     m.BatchNo,
		Duration:    m.Duration,
		Featured:    m.Featured,
		IsPremium:   m.IsPremium,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToMovieResponses(movies []Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i := range movies {
		out[i] = ToMovieResponse(&movies[i])
	}
	return out
}
