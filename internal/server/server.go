package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ordermgr/internal/handler"
	"ordermgr/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Clients  *handler.ClientHandler
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
}

// New はルートを登録したechoを返す
func New(log *zap.Logger, gatherer prometheus.Gatherer, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, gatherer, h)
	return e
}

func RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h.Clients.RegisterRoutes(e)
	h.Products.RegisterRoutes(e)
	h.Orders.RegisterRoutes(e)
}

// Start はctxが終わるまでサーブし、終わったらshutdownする
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
