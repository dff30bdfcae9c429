package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lavka-market/lavka-backend/api/controllers"
	"github.com/lavka-market/lavka-backend/api/middleware"
	"github.com/lavka-market/lavka-backend/internal/auth"
	"github.com/lavka-market/lavka-backend/internal/cart"
	"github.com/lavka-market/lavka-backend/internal/catalog"
	"github.com/lavka-market/lavka-backend/internal/checkout"
	"github.com/lavka-market/lavka-backend/internal/likes"
	"github.com/lavka-market/lavka-backend/internal/orders"
	"github.com/lavka-market/lavka-backend/internal/users"
	"github.com/lavka-market/lavka-backend/pkg/config"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/metrics"
	"github.com/lavka-market/lavka-backend/pkg/redis"
)

// cachePinger keeps a nil *redis.Client from reaching the readiness probe as
// a non-nil interface.
func cachePinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

// PublicDeps bundles everything the storefront router serves.
type PublicDeps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Auth     auth.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkout.Service
	Orders   orders.Service
	Likes    likes.Service
	Users    users.Service
}

// NewPublicRouter assembles the storefront API.
func NewPublicRouter(deps PublicDeps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cachePinger(deps.Redis), logg))
	})

	if deps.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.HTTPMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/magic-link", controllers.AuthRequestMagicLink(deps.Auth, logg))
			r.Post("/magic-link/consume", controllers.AuthConsumeMagicLink(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(deps.Catalog, logg))
			r.Get("/tags", controllers.CatalogTags(deps.Catalog, logg))
			r.Get("/items", controllers.CatalogItems(deps.Catalog, logg))
			r.Get("/items/{slug}", controllers.CatalogItemBySlug(deps.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartView(deps.Cart, logg))
				r.Post("/merge", controllers.CartMerge(deps.Cart, logg))
				r.Put("/items/{variantId}", controllers.CartSetQuantity(deps.Cart, logg))
				r.Delete("/items/{variantId}", controllers.CartRemove(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrdersGet(deps.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.OrdersCancel(deps.Orders, logg))
				if cfg.FeatureFlags.EnableDevEndpoints {
					r.Post("/{orderId}/simulate-payment", controllers.OrdersSimulatePayment(deps.Orders, logg))
				}
			})

			r.Route("/likes", func(r chi.Router) {
				r.Get("/", controllers.LikesList(deps.Likes, logg))
				r.Put("/{itemId}", controllers.LikesAdd(deps.Likes, logg))
				r.Delete("/{itemId}", controllers.LikesRemove(deps.Likes, logg))
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/", controllers.MeGet(deps.Users, logg))
				r.Patch("/", controllers.MeUpdate(deps.Users, logg))
			})
		})
	})

	return r
}

// AdminDeps bundles everything the back-office router serves.
type AdminDeps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Catalog catalog.AdminService
	Orders  orders.AdminService
	Users   users.AdminService
}

// NewAdminRouter assembles the back-office API. Every /api/admin route sits
// behind the static admin key.
func NewAdminRouter(deps AdminDeps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cachePinger(deps.Redis), logg))
	})

	if deps.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.HTTPMetrics.Handler())
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.Admin.APIKey, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoriesList(deps.Catalog, logg))
			r.Post("/", controllers.AdminCategoryCreate(deps.Catalog, logg))
			r.Put("/{categoryId}", controllers.AdminCategoryUpdate(deps.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDeactivate(deps.Catalog, logg))
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", controllers.AdminTagsList(deps.Catalog, logg))
			r.Post("/", controllers.AdminTagCreate(deps.Catalog, logg))
			r.Put("/{tagId}", controllers.AdminTagUpdate(deps.Catalog, logg))
			r.Delete("/{tagId}", controllers.AdminTagDeactivate(deps.Catalog, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.AdminItemsList(deps.Catalog, logg))
			r.Post("/", controllers.AdminItemCreate(deps.Catalog, logg))
			r.Get("/{itemId}", controllers.AdminItemGet(deps.Catalog, logg))
			r.Put("/{itemId}", controllers.AdminItemUpdate(deps.Catalog, logg))
			r.Delete("/{itemId}", controllers.AdminItemDeactivate(deps.Catalog, logg))

			r.Post("/{itemId}/images", controllers.AdminImageAdd(deps.Catalog, logg))
			r.Post("/{itemId}/variants", controllers.AdminVariantAdd(deps.Catalog, logg))
		})

		r.Route("/images", func(r chi.Router) {
			r.Put("/{imageId}", controllers.AdminImageUpdate(deps.Catalog, logg))
			r.Delete("/{imageId}", controllers.AdminImageDelete(deps.Catalog, logg))
		})

		r.Route("/variants", func(r chi.Router) {
			r.Put("/{variantId}", controllers.AdminVariantUpdate(deps.Catalog, logg))
			r.Delete("/{variantId}", controllers.AdminVariantDeactivate(deps.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrdersGet(deps.Orders, logg))
			r.Post("/{orderId}/transition", controllers.AdminOrdersTransition(deps.Orders, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUsersList(deps.Users, logg))
			r.Post("/{userId}/activate", controllers.AdminUserActivate(deps.Users, logg))
			r.Post("/{userId}/deactivate", controllers.AdminUserDeactivate(deps.Users, logg))
		})
	})

	return r
}
