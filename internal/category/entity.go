// AngelaMos | 2026
// entity.go

package category

import "time"

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Thumbnail   string    `db:"thumbnail"`
	IsPremium   bool      `db:"is_premium"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
