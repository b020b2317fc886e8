package repository

import (
	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
)

type TemplateRepository interface {
	Create(template *model.ReplyTemplate) error
	FindActive() ([]model.ReplyTemplate, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *model.ReplyTemplate) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) FindActive() ([]model.ReplyTemplate, error) {
	var templates []model.ReplyTemplate
	if err := r.db.Where("is_active = ?", true).Order("id").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
