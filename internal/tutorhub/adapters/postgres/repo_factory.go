package postgres

import (
	"tutorhub/internal/tutorhub/ports/repositories"
)

// RepositoryFactory создает репозитории tutorhub поверх одного пула.
type RepositoryFactory struct {
	userRepo    repositories.UserRepository
	catalogRepo repositories.CatalogRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:    NewUserRepository(pool),
		catalogRepo: NewCatalogRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// CatalogRepository возвращает репозиторий каталога.
func (f *RepositoryFactory) CatalogRepository() repositories.CatalogRepository {
	return f.catalogRepo
}
