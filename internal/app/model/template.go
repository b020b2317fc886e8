package model

import (
	"time"
)

// ReplyTemplate is reference data used to pre-fill a staff response.
// It never forces the response text.
type ReplyTemplate struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	TemplateText  string         `gorm:"type:text;not null" json:"template_text"`
	Category      ReviewCategory `gorm:"type:varchar(30)" json:"category"`
	SentimentType Sentiment      `gorm:"type:varchar(20)" json:"sentiment_type"`
	CreatedBy     *uint          `json:"created_by,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (ReplyTemplate) TableName() string {
	return "reply_templates"
}
