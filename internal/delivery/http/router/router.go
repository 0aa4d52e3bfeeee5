// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/hcplayer1988/coderr/internal/delivery/http/middleware"
	"github.com/hcplayer1988/coderr/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	OfferHandler   *handler.OfferHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	InfoHandler    *handler.InfoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authenticate := r.params.AuthMiddleware.Authenticate

	// Accounts and sessions
	e.POST("/registration", r.params.AuthHandler.Register)
	e.POST("/login", r.params.AuthHandler.Login)
	e.POST("/token/refresh", r.params.AuthHandler.Refresh)
	e.POST("/logout", r.params.AuthHandler.Logout)

	// Profiles
	e.GET("/profile/:id", r.params.ProfileHandler.GetProfile, authenticate)
	e.PATCH("/profile/:id", r.params.ProfileHandler.UpdateProfile, authenticate)
	e.GET("/profiles/business", r.params.ProfileHandler.ListBusinessProfiles, authenticate)
	e.GET("/profiles/customer", r.params.ProfileHandler.ListCustomerProfiles, authenticate)

	// Offers; list and single read are public
	e.GET("/offers", r.params.OfferHandler.ListOffers)
	e.GET("/offers/:id", r.params.OfferHandler.GetOffer)
	e.POST("/offers", r.params.OfferHandler.CreateOffer, authenticate)
	e.PATCH("/offers/:id", r.params.OfferHandler.UpdateOffer, authenticate)
	e.DELETE("/offers/:id", r.params.OfferHandler.DeleteOffer, authenticate)
	e.GET("/offerdetails/:id", r.params.OfferHandler.GetOfferDetail, authenticate)

	// Orders
	e.POST("/orders", r.params.OrderHandler.CreateOrder, authenticate)
	e.GET("/orders", r.params.OrderHandler.ListOrders, authenticate)
	e.PATCH("/orders/:id", r.params.OrderHandler.UpdateOrderStatus, authenticate)
	e.DELETE("/orders/:id", r.params.OrderHandler.DeleteOrder, authenticate)
	e.GET("/order-count/:user_id", r.params.OrderHandler.CountInProgressOrders, authenticate)
	e.GET("/completed-order-count/:user_id", r.params.OrderHandler.CountCompletedOrders, authenticate)

	// Reviews
	e.POST("/reviews", r.params.ReviewHandler.CreateReview, authenticate)
	e.GET("/reviews", r.params.ReviewHandler.ListReviews, authenticate)
	e.PATCH("/reviews/:id", r.params.ReviewHandler.UpdateReview, authenticate)
	e.DELETE("/reviews/:id", r.params.ReviewHandler.DeleteReview, authenticate)

	// Public statistics
	e.GET("/base-info", r.params.InfoHandler.BaseInfo)
}
