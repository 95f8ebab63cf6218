package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DERICHRIS/immantravels/api"
	"github.com/DERICHRIS/immantravels/config"
	"github.com/DERICHRIS/immantravels/internal/service/admin"
	"github.com/DERICHRIS/immantravels/internal/service/booking"
	"github.com/DERICHRIS/immantravels/internal/service/routes"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, routeSvc routes.RouteUseCase, bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) error {
	router := NewRouter(cfg, routeSvc, bookingSvc, adminSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires every handler group onto a gin engine.
func NewRouter(cfg *config.Config, routeSvc routes.RouteUseCase, bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewRouteHandler(routeSvc).Register(v1.Group("/routes"))
	api.NewBookingHandler(bookingSvc).Register(v1.Group("/bookings"))
	api.NewAdminHandler(adminSvc).Register(v1.Group("/admin"))

	if cfg.HTTP.DocsDir != "" {
		router.Static("/swagger", cfg.HTTP.DocsDir)
		router.GET("/docs", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html", []byte(swaggerUIPage("/swagger/openapi.json")))
		})
	}

	return router
}

func swaggerUIPage(jsonURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "%s",
                dom_id: '#swagger-ui'
            });
        };
    </script>
</body>
</html>`, jsonURL)
}
