package api

import (
	"review-service/internal/jwt"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth    *AuthHandler
	Token   *TokenHandler
	Review  *ReviewHandler
	Listing *ListingHandler
}

func SetupRoutes(app *fiber.App, tokens *jwt.Manager, h Handlers) {
	v1 := app.Group("/v1")
	requireAuth := AuthMiddleware(tokens)

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	// check answers every caller, so it stays outside the identity middleware.
	token := v1.Group("/token")
	token.Get("/check", h.Token.Check)
	token.Post("/reissue", TokenIdentityMiddleware(tokens), h.Token.Reissue)

	reviews := v1.Group("/reviews")
	reviews.Get("/recent", h.Review.Recent)
	reviews.Get("/star", h.Review.Star)
	reviews.Get("/detail", h.Review.Detail)
	reviews.Get("/others", h.Review.Others)
	reviews.Get("/search", h.Review.Search)
	reviews.Post("/", requireAuth, h.Review.Submit)
	reviews.Delete("/:id", requireAuth, h.Review.Delete)

	listings := v1.Group("/listings")
	listings.Post("/", requireAuth, h.Listing.Create)
	listings.Get("/:id", h.Listing.Get)
}
