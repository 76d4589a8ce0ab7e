package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/pkg/logging"
)

//go:embed recipes.json
var recipesJSON []byte

const seedPassword = "testpassword123"

var seedUsers = []types.RegisterRequest{
	{Name: "John Doe", Username: "johndoe", Email: "john.doe@example.com"},
	{Name: "Jane Smith", Username: "janesmith", Email: "jane.smith@example.com"},
	{Name: "Bob Wilson", Username: "bobwilson", Email: "bob.wilson@example.com"},
}

func main() {
	migrate := flag.Bool("migrate", true, "Run migrations before seeding")
	flag.Parse()

	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if *migrate {
		if err := database.RunMigrations(db, "migrations"); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	var recipes []types.CreateRecipeRequest
	if err := json.Unmarshal(recipesJSON, &recipes); err != nil {
		slog.Error("failed to parse seed recipes", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry)
	recipeService := service.NewRecipeService(db)
	reviewService := service.NewReviewService(db)

	users := make([]*models.User, 0, len(seedUsers))
	for _, req := range seedUsers {
		user, err := seedUser(ctx, auth, req)
		if err != nil {
			slog.Error("failed to seed user", "username", req.Username, "error", err)
			os.Exit(1)
		}
		users = append(users, user)
	}

	created := 0
	for i := range recipes {
		author := users[i%len(users)]
		recipe, err := recipeService.CreateRecipe(ctx, author.ID, &recipes[i])
		if err != nil {
			slog.Warn("failed to create recipe", "title", recipes[i].Title, "error", err)
			continue
		}
		created++

		// every other user leaves a review
		for j, reviewer := range users {
			if reviewer.ID == author.ID {
				continue
			}
			_, err := reviewService.CreateReview(ctx, recipe.ID, reviewer.ID, &types.CreateReviewRequest{
				Rating: 3 + (i+j)%3,
				Text:   "Made this for dinner, would cook again.",
			})
			if err != nil {
				slog.Warn("failed to create review", "recipe", recipe.Slug, "error", err)
			}
		}
		slog.Info("seeded recipe", "slug", recipe.Slug, "author", author.Username)
	}

	slog.Info("seeding complete", "users", len(users), "recipes", created, "password", seedPassword)
}

// seedUser registers req, or logs in when the account already exists.
func seedUser(ctx context.Context, auth *service.AuthService, req types.RegisterRequest) (*models.User, error) {
	req.Password = seedPassword
	user, _, err := auth.Register(ctx, &req)
	if err == nil {
		return user, nil
	}
	if !types.IsValidation(err) {
		return nil, err
	}
	user, _, loginErr := auth.Login(ctx, &types.LoginRequest{Email: req.Email, Password: seedPassword})
	if loginErr != nil {
		return nil, errors.Join(err, loginErr)
	}
	return user, nil
}
