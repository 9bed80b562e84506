package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrUserAlreadyExist = errors.New("user already exist")
)

type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type ProductRepo interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	SearchByName(ctx context.Context, query string) ([]models.Product, error)
	Create(ctx context.Context, prod *models.Product) error
	Update(ctx context.Context, prod *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type Users struct {
	DB *gorm.DB
}

type Products struct {
	DB *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

func NewProducts(db *gorm.DB) *Products {
	return &Products{DB: db}
}
