package repository

import (
	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindByID(id uint) (*model.Branch, error)
	FindByCode(code string) (*model.Branch, error)
	FindAll() ([]model.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) FindByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindByCode(code string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.Where("branch_code = ?", code).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll() ([]model.Branch, error) {
	var branches []model.Branch
	if err := r.db.Order("id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
