package service

import (
	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
)

type CreateTemplateInput struct {
	Name          string
	TemplateText  string
	Category      string
	SentimentType string
}

type TemplateService interface {
	Create(creatorID uint, input CreateTemplateInput) (*model.ReplyTemplate, error)
	ListActive() ([]model.ReplyTemplate, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) Create(creatorID uint, input CreateTemplateInput) (*model.ReplyTemplate, error) {
	template := &model.ReplyTemplate{
		Name:          input.Name,
		TemplateText:  input.TemplateText,
		Category:      model.NormalizeCategory(input.Category),
		SentimentType: model.NormalizeSentiment(input.SentimentType),
		CreatedBy:     &creatorID,
		IsActive:      true,
	}

	if err := s.templateRepo.Create(template); err != nil {
		logger.Error("Failed to create reply template", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Reply template created", map[string]interface{}{
		"template_id": template.ID,
		"name":        template.Name,
	})
	return template, nil
}

func (s *templateService) ListActive() ([]model.ReplyTemplate, error) {
	return s.templateRepo.FindActive()
}
