package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/db"
)

func setupTemplateServiceTest(t *testing.T) (TemplateService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewTemplateService(repository.NewTemplateRepository(testDB)), testDB
}

func TestTemplateService_Create(t *testing.T) {
	svc, _ := setupTemplateServiceTest(t)

	template, err := svc.Create(7, CreateTemplateInput{
		Name:          "Apology",
		TemplateText:  "We are sorry about your experience.",
		Category:      "service",
		SentimentType: "negative",
	})
	require.NoError(t, err)
	require.NotZero(t, template.ID)

	assert.Equal(t, model.CategoryService, template.Category)
	assert.Equal(t, model.SentimentNegative, template.SentimentType)
	require.NotNil(t, template.CreatedBy)
	assert.Equal(t, uint(7), *template.CreatedBy)
	assert.True(t, template.IsActive)
}

func TestTemplateService_Create_NormalizesUnknownValues(t *testing.T) {
	svc, _ := setupTemplateServiceTest(t)

	template, err := svc.Create(1, CreateTemplateInput{
		Name:          "Generic",
		TemplateText:  "Thank you for your feedback.",
		Category:      "weather",
		SentimentType: "meh",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewCategory(""), template.Category)
	assert.Equal(t, model.Sentiment(""), template.SentimentType)
}

func TestTemplateService_ListActive(t *testing.T) {
	svc, testDB := setupTemplateServiceTest(t)

	_, err := svc.Create(1, CreateTemplateInput{Name: "A", TemplateText: "text a"})
	require.NoError(t, err)
	inactive, err := svc.Create(1, CreateTemplateInput{Name: "B", TemplateText: "text b"})
	require.NoError(t, err)

	require.NoError(t, testDB.Model(&model.ReplyTemplate{}).
		Where("id = ?", inactive.ID).
		Update("is_active", false).Error)

	templates, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "A", templates[0].Name)
}
