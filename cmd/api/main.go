// @title           DANY-SHOP API
// @version         1.0
// @description     Clientes, inventario, ventas de contado y a crédito, y reportes de la tienda.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/dany-shop/docs"
	"github.com/jhoicas/dany-shop/internal/application/auth"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
	infrapdf "github.com/jhoicas/dany-shop/internal/infrastructure/pdf"
	"github.com/jhoicas/dany-shop/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/dany-shop/internal/interfaces/http"
	"github.com/jhoicas/dany-shop/pkg/config"
	"github.com/jhoicas/dany-shop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Auth.PasswordHash == "" {
		log.Warn().Msg("AUTH_PASSWORD_HASH vacío: el login queda deshabilitado")
	}

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeRepo()

	shop := ledger.New(repo, ledger.Config{
		DebtGraceDays:     cfg.Store.DebtGraceDays,
		LowStockThreshold: cfg.Store.LowStockThreshold,
	}, ledger.WithLogger(log.Component("ledger")))
	shop.Load(ctx)
	shop.Subscribe(func(m entity.Metrics) {
		log.Debug().
			Int("ventas", m.SalesCount).
			Str("ganancias", m.TotalProfit.StringFixed(2)).
			Int("clientes_activos", m.ActiveCustomers).
			Int("productos_activos", m.ActiveProducts).
			Msg("métricas actualizadas")
	})

	authUC := auth.NewAuthUseCase(auth.Operator{
		Name:         cfg.Auth.Operator,
		PasswordHash: cfg.Auth.PasswordHash,
		Role:         cfg.Auth.Role,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DANY-SHOP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    shop,
		AuthUC:    authUC,
		Ticket:    infrapdf.NewTicketGenerator(),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shop.Save(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("guardado final")
	}

	log.Info().Msg("aplicación detenida")
}
