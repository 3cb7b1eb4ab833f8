package main

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type migrateParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Config  *config.Config
	Logger  *slog.Logger
	DB      *gorm.DB
	AdminUC usecase.AdminUsecase
}

func main() {
	fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewAdminRepository,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			auth.NewPasswordGenerator,
			impl.NewAdminService,
		),
		fx.Invoke(registerMigration),
	).Run()
}

// registerMigration runs after the database hook has pinged, then stops the app.
func registerMigration(params migrateParams) {
	params.Append(fx.StartHook(func(ctx context.Context) error {
		exitCode := 0
		if err := migrate(ctx, params); err != nil {
			params.Logger.Error("Migration failed", slog.Any("error", err))
			exitCode = 1
		}

		return params.Shutdown(fx.ExitCode(exitCode))
	}))
}

func migrate(ctx context.Context, params migrateParams) error {
	if err := postgres.Migrate(ctx, params.DB); err != nil {
		return err
	}
	params.Logger.Info("Schema migrated")

	if err := postgres.SeedReferenceData(ctx, params.DB); err != nil {
		return err
	}
	params.Logger.Info("Reference data seeded")

	boot := params.Config.Bootstrap
	if boot == nil || boot.SuperAdminEmail == "" {
		params.Logger.Warn("Skipping super admin bootstrap: bootstrap.superAdminEmail is not set")

		return nil
	}

	admin, created, err := params.AdminUC.EnsureSuperAdmin(ctx, boot.SuperAdminEmail, boot.SuperAdminPassword, boot.SuperAdminName)
	if err != nil {
		return err
	}
	if created {
		params.Logger.Info("Super admin created", slog.String("email", admin.Email))
	} else {
		params.Logger.Info("Super admin already exists", slog.String("email", admin.Email))
	}

	return nil
}
