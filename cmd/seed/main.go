// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/angelamos/streamvault/internal/category"
	"github.com/angelamos/streamvault/internal/config"
	"github.com/angelamos/streamvault/internal/core"
	"github.com/angelamos/streamvault/internal/movie"
	"github.com/angelamos/streamvault/internal/user"

	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // seed data is inherently verbose
func run(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	logger.Info("database connected, clearing existing data")

	for _, table := range []string{"movies", "categories", "users"} {
		if _, err := db.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	categoryRepo := category.NewRepository(db.DB)
	categories := []category.Category{
		{Name: "Action", Description: "Action-packed movies", IsPremium: false},
		{Name: "Drama", Description: "Dramatic content", IsPremium: false},
		{Name: "Thriller", Description: "Suspense and thrillers", IsPremium: true},
		{Name: "Sci-Fi", Description: "Science Fiction", IsPremium: true},
		{Name: "Crime", Description: "Crime and mystery", IsPremium: true},
		{Name: "History", Description: "Historical content", IsPremium: false},
		{Name: "Mystery", Description: "Mystery and detective", IsPremium: true},
		{Name: cfg.Catalog.DefaultSignupCategory, Description: "Starter content for new accounts", IsPremium: false},
	}
	for i := range categories {
		categories[i].ID = uuid.New().String()
		if err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			return fmt.Errorf("seed category %q: %w", categories[i].Name, err)
		}
	}
	logger.Info("categories seeded", "count", len(categories))

	userRepo := user.NewRepository(db.DB)

	allCategories := core.StringList{
		"Action", "Drama", "Thriller", "Sci-Fi", "Crime", "History", "Mystery",
	}

	users := []user.User{
		{
			ID:                   uuid.New().String(),
			Name:                 "Admin User",
			Email:                cfg.Catalog.ProtectedAdminEmail,
			Role:                 user.RoleAdmin,
			Subscription:         user.SubscriptionPremium,
			SubscribedCategories: allCategories,
			Active:               true,
		},
		{
			ID:                   uuid.New().String(),
			Name:                 "Premium User",
			Email:                "premium@netflix.com",
			Role:                 user.RoleUser,
			Subscription:         user.SubscriptionPremium,
			SubscribedCategories: core.StringList{"Thriller", "Sci-Fi", "Crime"},
			Active:               true,
		},
		{
			ID:                   uuid.New().String(),
			Name:                 "John Doe",
			Email:                "user@netflix.com",
			Role:                 user.RoleUser,
			Subscription:         user.SubscriptionFree,
			SubscribedCategories: core.StringList{"Action", "Drama"},
			Active:               true,
		},
	}
	passwords := []string{"admin123", "premium123", "user123"}

	for i := range users {
		hash, hashErr := core.HashPassword(passwords[i])
		if hashErr != nil {
			return fmt.Errorf("hash seed password: %w", hashErr)
		}
		users[i].PasswordHash = hash
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %q: %w", users[i].Email, err)
		}
	}
	logger.Info("users seeded", "count", len(users))

	movieRepo := movie.NewRepository(db.DB)
	movies := []*movie.Movie{
		{
			Title:       "Stranger Things",
			Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments.",
			Poster:      "https://image.tmdb.org/t/p/w500/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Thriller", "Drama", "Sci-Fi"},
			BatchNo:     "BATCH-2024-001",
			Duration:    "51min",
			Featured:    true,
			IsPremium:   true,
		},
		{
			Title:       "The Crown",
			Description: "Follows the political rivalries and romance of Queen Elizabeth II's reign.",
			Poster:      "https://image.tmdb.org/t/p/w500/1M876KPjulVwppEpldhdc8V4o68.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Drama", "History"},
			BatchNo:     "BATCH-2024-002",
			Duration:    "58min",
			Featured:    true,
			IsPremium:   false,
		},
		{
			Title:       "Breaking Bad",
			Description: "A high school chemistry teacher turned methamphetamine manufacturer.",
			Poster:      "https://image.tmdb.org/t/p/w500/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Crime", "Drama", "Thriller"},
			BatchNo:     "BATCH-2024-003",
			Duration:    "47min",
			Featured:    false,
			IsPremium:   true,
		},
		{
			Title:       "Money Heist",
			Description: "A criminal mastermind manipulates the police as his team executes a perfect heist.",
			Poster:      "https://image.tmdb.org/t/p/w500/reEMJA1uzscCbkpeRJeTT2bjqUp.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Crime", "Action", "Thriller"},
			BatchNo:     "BATCH-2024-004",
			Duration:    "70min",
			Featured:    true,
			IsPremium:   true,
		},
		{
			Title:       "Dark",
			Description: "A family saga with a supernatural twist across three generations.",
			Poster:      "https://image.tmdb.org/t/p/w500/56v2KjBlU4XaOv9rVYEQypROD7P.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Mystery", "Sci-Fi", "Thriller"},
			BatchNo:     "BATCH-2024-005",
			Duration:    "60min",
			Featured:    false,
			IsPremium:   true,
		},
		{
			Title:       "Free Action Movie",
			Description: "An action-packed free movie for all users.",
			Poster:      "https://image.tmdb.org/t/p/w500/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
			VideoURL:    "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
			VideoType:   movie.VideoTypeDirect,
			Categories:  core.StringList{"Action"},
			BatchNo:     "BATCH-2024-006",
			Duration:    "45min",
			Featured:    true,
			IsPremium:   false,
		},
	}
	for _, m := range movies {
		m.ID = uuid.New().String()
	}
	if err := movieRepo.InsertMany(ctx, movies); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}
	logger.Info("movies seeded", "count", len(movies))

	logger.Info("seed complete")
	logger.Info("login credentials",
		"admin", cfg.Catalog.ProtectedAdminEmail+" / admin123",
		"premium", "premium@netflix.com / premium123",
		"free", "user@netflix.com / user123",
	)

	return nil
}
