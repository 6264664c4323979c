package config

import (
	"Recipe-Finder/internal/api/handlers"
	"Recipe-Finder/internal/api/routes"
	"Recipe-Finder/internal/middleware"
	"Recipe-Finder/internal/utils"
	"Recipe-Finder/internal/utils/mailing"
	"Recipe-Finder/internal/utils/storage"
	"Recipe-Finder/pkg/auth"
	"Recipe-Finder/pkg/calendar"
	"Recipe-Finder/pkg/jwt"
	"Recipe-Finder/pkg/recipe"
	"Recipe-Finder/pkg/search"
	"Recipe-Finder/pkg/store"
	"Recipe-Finder/pkg/user"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func NewApp(st store.Store) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailService()

	// Repository
	userRepository := user.NewUserRepository(st)
	recipeRepository := recipe.NewRecipeRepository(st)
	relationRepository := recipe.NewRelationRepository(st)
	calendarRepository := calendar.NewCalendarRepository(st)

	// Service
	jwtService := jwt.NewJWTService()
	authService := auth.NewAuthService(utils.GetConfig("FIREBASE_API_KEY"), "")
	userService := user.NewUserService(
		userRepository,
		authService,
		jwtService,
		utils.GetConfig("ADMIN_EMAIL"),
		moderatorEmails(),
	)
	recipeService := recipe.NewRecipeService(recipeRepository, relationRepository, s3, mailer)
	calendarService := calendar.NewCalendarService(calendarRepository, recipeRepository)
	searchService := search.NewSearchService(utils.GetConfig("SPOONACULAR_API_KEY"), "")

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, searchService, validator)
	calendarHandler := handlers.NewCalendarHandler(calendarService, validator)
	searchHandler := handlers.NewSearchHandler(searchService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		CalendarHandler: calendarHandler,
		SearchHandler:   searchHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func moderatorEmails() []string {
	raw := utils.GetConfig("MODERATOR_EMAILS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}
