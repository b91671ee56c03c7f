package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/taifexpulse/config"
	"github.com/guttosm/taifexpulse/internal/api"
	"github.com/guttosm/taifexpulse/internal/service"
	"github.com/guttosm/taifexpulse/internal/storage"
)

// InitializeApp wires the API mode: database, repository, service, handlers
// and router.
//
// Returns:
//   - *gin.Engine: the configured HTTP router.
//   - func(): cleanup to run on shutdown (closes the DB pool).
//   - error: any initialization failure.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewBarsRepository(db)
	svc := service.NewSeriesService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
