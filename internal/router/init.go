package router

import (
	"github.com/oksasatya/cardvault/internal/application"
	"github.com/oksasatya/cardvault/internal/container"
	pginfra "github.com/oksasatya/cardvault/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/cardvault/internal/interface/http"
	"github.com/oksasatya/cardvault/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	identities := pginfra.NewLinkedIdentityRepository(pool)
	cards := pginfra.NewCreditCardRepository(pool)

	authSvc := application.NewAuthService(users, identities, container.GetSessions(), logger)
	cardSvc := application.NewCardService(cards, logger)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetOAuthClient(), container.GetOAuthStates(), logger, cfg)
	cardHandler := handlers.NewCardHandler(cardSvc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewCardModule(cardHandler))
	r.Add(modules.NewDebugModule())
	r.AddPages(modules.NewPageModule(handlers.NewPageHandler()))
}
