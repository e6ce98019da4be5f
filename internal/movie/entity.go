// AngelaMos | 2026
// entity.go

package movie

import (
	"time"

	"github.com/angelamos/streamvault/internal/core"
)

type Movie struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Poster      string          `db:"poster"`
	VideoURL    string          `db:"video_url"`
	VideoType   string          `db:"video_type"`
	Categories  core.StringList `db:"categories"`
	BatchNo     string          `db:"batch_no"`
	Duration    string          `db:"duration"`
	Featured    bool            `db:"featured"`
	IsPremium   bool            `db:"is_premium"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

const (
	VideoTypeDirect  = "direct"
	VideoTypeYouTube = "youtube"
)
