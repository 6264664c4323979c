package routes

import (
	"Recipe-Finder/internal/api/handlers"
	"Recipe-Finder/internal/middleware"
	"Recipe-Finder/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	CalendarHandler handlers.CalendarHandler
	SearchHandler   handlers.SearchHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Calendar()
	c.Search()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// browsing is open; the detail view annotates viewer state when a
	// token is present
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/mine", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetMyRecipes)
	recipes.Get("/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetFavorites)
	recipes.Get("/bookmarks", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetBookmarks)
	recipes.Get("/saved/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetSavedRecipeDetail)
	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/shopping-list", c.RecipeHandler.GetShoppingList)

	// mutations
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes.Post("", auth, c.RecipeHandler.UploadRecipe)
	recipes.Post("/save", auth, c.RecipeHandler.SaveExternalRecipe)
	recipes.Delete("", auth, c.RecipeHandler.DeleteRecipe)
	recipes.Post("/favorite", auth, c.RecipeHandler.FavoriteRecipe)
	recipes.Post("/unfavorite", auth, c.RecipeHandler.UnfavoriteRecipe)
	recipes.Post("/bookmark", auth, c.RecipeHandler.ToggleBookmark)
	recipes.Post("/:id/rate", auth, c.RecipeHandler.RateRecipe)
	recipes.Post("/image", auth, c.RecipeHandler.UploadRecipeImage)
	recipes.Post("/:id/shopping-list/email", auth, c.RecipeHandler.EmailShoppingList)
}

func (c *Config) Calendar() {
	calendar := c.App.Group("/api/v1/calendar", c.Middleware.AuthMiddleware(c.JWTService))
	calendar.Get("", c.CalendarHandler.GetCalendar)
	calendar.Post("", c.CalendarHandler.AddToCalendar)
	calendar.Delete("", c.CalendarHandler.RemoveFromCalendar)
}

func (c *Config) Search() {
	c.App.Post("/api/v1/search", c.SearchHandler.SearchByIngredients)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
