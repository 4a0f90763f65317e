package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
	"github.com/travelfoodcms/travelfood-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "travelfood", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Destination{},
		&types.Restaurant{},
		&types.Order{},
		&types.OrderItem{},
	)
	if err != nil {
		return err
	}

	// Cascade foreign keys mirror the cascade resolver; they are a backstop,
	// not the mechanism the application relies on.
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{"fk_restaurant_destination_id", `
			ALTER TABLE "restaurant"
			ADD CONSTRAINT "fk_restaurant_destination_id"
			FOREIGN KEY ("destination_id")
			REFERENCES "destination"("destination_id")
			ON DELETE CASCADE`},
		{"fk_order_restaurant_id", `
			ALTER TABLE "order"
			ADD CONSTRAINT "fk_order_restaurant_id"
			FOREIGN KEY ("restaurant_id")
			REFERENCES "restaurant"("restaurant_id")
			ON DELETE CASCADE`},
		{"fk_order_user_id", `
			ALTER TABLE "order"
			ADD CONSTRAINT "fk_order_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("user_id")
			ON DELETE CASCADE`},
		{"fk_order_item_order_id", `
			ALTER TABLE "order_item"
			ADD CONSTRAINT "fk_order_item_order_id"
			FOREIGN KEY ("order_id")
			REFERENCES "order"("order_id")
			ON DELETE CASCADE`},
		{"fk_user_token_user_id", `
			ALTER TABLE "user_token"
			ADD CONSTRAINT "fk_user_token_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("user_id")
			ON DELETE CASCADE`},
	}
	for _, constraint := range constraints {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, tableOf(constraint.name), constraint.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", constraint.name, err)
		}
		if err := s.db.Exec(constraint.stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", constraint.name, err)
		}
	}
	return nil
}

func tableOf(constraintName string) string {
	switch constraintName {
	case "fk_restaurant_destination_id":
		return "restaurant"
	case "fk_order_restaurant_id", "fk_order_user_id":
		return "order"
	case "fk_order_item_order_id":
		return "order_item"
	default:
		return "user_token"
	}
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
