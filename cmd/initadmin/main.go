// Command initadmin bootstraps the first staff account so the API has a
// user able to manage the rest.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/Nicksok2413/Kronon/internal/audit"
	"github.com/Nicksok2413/Kronon/internal/config"
	"github.com/Nicksok2413/Kronon/internal/domain/dto"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
	"github.com/Nicksok2413/Kronon/internal/infrastructure/database"
	"github.com/Nicksok2413/Kronon/internal/usecase"
	"github.com/Nicksok2413/Kronon/pkg/logger"
)

func main() {
	var (
		email     = flag.String("email", "", "admin email (required)")
		password  = flag.String("password", "", "admin password (required, min 8 characters)")
		firstName = flag.String("first-name", "", "first name")
		lastName  = flag.String("last-name", "", "last name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// A one-shot bootstrap command logs to stdout in the default shape.
	zapLogger := logger.DefaultZapLogger()
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db, zapLogger)

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)
	userUsecase := usecase.NewUserUsecase(repos.User, zapLogger)

	// The bootstrap write is attributed to the CLI channel in the change
	// log. Only the command name goes in; flags carry the password.
	ctx := audit.NewContext(context.Background(), audit.Context{
		AppSource: model.SourceCLI,
		Command:   fmt.Sprintf("initadmin -email %s", *email),
	})

	user, err := userUsecase.Create(ctx, dto.UserCreate{
		Email:     *email,
		Password:  *password,
		Role:      model.RoleDirector,
		FirstName: *firstName,
		LastName:  *lastName,
		IsStaff:   true,
	})
	if err != nil {
		zapLogger.Fatal("Failed to create admin user", zap.Error(err))
	}

	fmt.Printf("Admin user created: %s (%s)\n", user.Email, user.ID)
}
