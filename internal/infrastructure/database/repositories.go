package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nicksok2413/Kronon/internal/adapter/repository"
	domainRepo "github.com/Nicksok2413/Kronon/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Client     domainRepo.ClientRepository
	User       domainRepo.UserRepository
	Department domainRepo.DepartmentRepository
	AuditEvent domainRepo.AuditEventRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Client:     repository.NewClientRepository(db, logger),
		User:       repository.NewUserRepository(db, logger),
		Department: repository.NewDepartmentRepository(db, logger),
		AuditEvent: repository.NewAuditEventRepository(db, logger),
	}
}
