// AngelaMos | 2026
// dto.go

package ingest

import "github.com/angelamos/streamvault/internal/movie"

// BulkMovieRequest is the JSON bulk variant. Unlike the tabular upload it
// performs no duplicate reconciliation, matching the legacy surface.
type BulkMovieRequest struct {
	Movies []movie.CreateMovieRequest `json:"movies" validate:"required,min=1,dive"`
}

// BulkResult reports the outcome of a bulk insert. Warning and Duplicates
// appear only when at least one candidate was skipped as a duplicate.
type BulkResult struct {
	Success    bool                  `json:"success"`
	Count      int                   `json:"count"`
	Movies     []movie.MovieResponse `json:"movies"`
	Warning    string                `json:"warning,omitempty"`
	Duplicates []string              `json:"duplicates,omitempty"`
}
