package handlers

import (
	userRepoPkg "okclinic/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers and what the route
// middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache *redis.Client

	Auth     *AuthHandler
	Pets     *PetHandler
	Bookings *BookingHandler
	Invoices *InvoiceHandler
	Feedback *FeedbackHandler
	Catalog  *CatalogHandler
	Admin    *AdminHandler
}
