package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"velora/internal/ai"
	"velora/internal/config"
	"velora/internal/debounce"
	"velora/internal/domain"
	"velora/internal/events"
	"velora/internal/persist"
	"velora/internal/repos"
	"velora/internal/services"
	"velora/internal/store"
)

type Deps struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Prefs    *PrefsHandler
	Checkout *CheckoutHandler
	AI       *AIHandler
	Review   *ReviewHandler
	Auth     *AuthHandler
	Admin    *AdminHandler

	AuthSvc  *services.AuthService
	StockSvc *services.StockService
}

func NewDeps(db *mongo.Database, kv persist.KV, cfg config.Config, bus *events.Bus, stockWriter *debounce.Writer) *Deps {
	prodRepo := repos.NewProductRepo(db, bus)
	catRepo := repos.NewCategoryRepo(db, bus)
	revRepo := repos.NewReviewRepo(db, bus)
	orderRepo := repos.NewOrderRepo(db, bus)
	userRepo := repos.NewUserRepo(db, bus)
	setRepo := repos.NewSettingsRepo(db, bus)

	defaults := domain.StoreSettings{
		StoreName:     "Velora",
		WhatsAppPhone: cfg.WhatsAppPhone,
		DefaultLang:   "en",
		TryOnDailyCap: cfg.TryOnDailyCap,
	}

	sessions := store.NewManager(kv)
	flows := ai.NewFlows(ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel), prodRepo)

	catalogSvc := services.NewCatalogService(prodRepo, catRepo, revRepo)
	cartSvc := services.NewCartService(prodRepo)
	wishSvc := services.NewWishlistService(prodRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, flows, setRepo, defaults)
	reviewSvc := services.NewReviewService(revRepo, prodRepo)
	stockSvc := services.NewStockService(prodRepo, stockWriter)
	authSvc := services.NewAuthService(userRepo)

	return &Deps{
		Catalog:  &CatalogHandler{Catalog: catalogSvc, Sessions: sessions},
		Cart:     &CartHandler{Cart: cartSvc, Sessions: sessions},
		Wishlist: &WishlistHandler{Wish: wishSvc, Sessions: sessions},
		Prefs:    &PrefsHandler{Sessions: sessions},
		Checkout: &CheckoutHandler{Checkout: checkoutSvc, Sessions: sessions},
		AI: &AIHandler{
			Flows: flows, Sessions: sessions,
			Settings: setRepo, Defaults: defaults,
		},
		Review: &ReviewHandler{Reviews: reviewSvc},
		Auth:   &AuthHandler{Auth: authSvc},
		Admin: &AdminHandler{
			Products: prodRepo, Categories: catRepo,
			Orders: orderRepo, Reviews: reviewSvc,
			Stock: stockSvc, Auth: authSvc,
			Settings: setRepo, Defaults: defaults,
		},

		AuthSvc:  authSvc,
		StockSvc: stockSvc,
	}
}
