package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"vendorwatch/config"
	"vendorwatch/internal/delivery"
	"vendorwatch/internal/delivery/http"
	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/router/handler"
	"vendorwatch/internal/delivery/watcher"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/infra/auth"
	logs "vendorwatch/internal/infra/log"
	"vendorwatch/internal/infra/notification"
	"vendorwatch/internal/infra/persistence/firestore"
	"vendorwatch/internal/infra/pubsub"
	"vendorwatch/internal/infra/qrcode"
	"vendorwatch/internal/infra/storage"
	"vendorwatch/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			firestore.New,
		),
		storage.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		firestore.NewPropertyRepository,
		firestore.NewUserRepository,
		firestore.NewPortfolioImporter,
		firestore.NewPropertyWatcher,
		firestore.NewUserWatcher,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		newPasswordHasher,
		auth.NewJWTService,
		newFirebaseService,
		newQRCodeService,
	)
}

// newPasswordHasher creates the bcrypt hasher, honoring a configured cost.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.BcryptCost == 0 {
		return auth.NewBcryptHasher()
	}

	return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewPortfolioService,
		impl.NewPropertyService,
		impl.NewWizardService,
		impl.NewImportService,
		impl.NewDocumentService,
		impl.NewUserService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewErrorMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewPortfolioHandler,
		handler.NewPropertyHandler,
		handler.NewWizardHandler,
		handler.NewDocumentHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
		fx.Annotate(
			watcher.NewWatcher,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
