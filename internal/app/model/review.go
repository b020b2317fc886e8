package model

import (
	"time"
)

type ReviewSource string

const (
	SourceGoogle   ReviewSource = "google"
	SourceZomato   ReviewSource = "zomato"
	SourceInternal ReviewSource = "internal"
	SourceWhatsApp ReviewSource = "whatsapp"
)

// NormalizeSource maps any recognized source value to its canonical form.
// Unknown or empty values fall back to the internal collection form.
func NormalizeSource(s string) ReviewSource {
	switch ReviewSource(s) {
	case SourceGoogle, SourceZomato, SourceInternal, SourceWhatsApp:
		return ReviewSource(s)
	default:
		return SourceInternal
	}
}

type ReviewCategory string

const (
	CategoryFood        ReviewCategory = "food"
	CategoryService     ReviewCategory = "service"
	CategoryStaff       ReviewCategory = "staff"
	CategoryCleanliness ReviewCategory = "cleanliness"
	CategoryAmbience    ReviewCategory = "ambience"
)

// NormalizeCategory passes through the five recognized categories and
// normalizes everything else to empty (uncategorized). Never an error.
func NormalizeCategory(c string) ReviewCategory {
	switch ReviewCategory(c) {
	case CategoryFood, CategoryService, CategoryStaff, CategoryCleanliness, CategoryAmbience:
		return ReviewCategory(c)
	default:
		return ""
	}
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// NormalizeSentiment passes through the three recognized sentiment
// values and clears anything else.
func NormalizeSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return Sentiment(s)
	default:
		return ""
	}
}

// Review is the central entity. Source and sentiment are fixed at
// creation; a response may be recorded exactly once; escalation is a
// one-way flag.
type Review struct {
	ID       uint         `gorm:"primarykey" json:"id"`
	BranchID uint         `gorm:"not null;index" json:"branch_id"`
	Branch   Branch       `gorm:"foreignKey:BranchID" json:"-"`
	Source   ReviewSource `gorm:"type:varchar(20);not null" json:"source"`
	Rating   int          `gorm:"not null" json:"rating"` // 1-5
	Title    string       `json:"title"`
	Content  string       `gorm:"type:text;not null" json:"content"`

	Category  ReviewCategory `gorm:"type:varchar(30);index" json:"category"`
	Sentiment Sentiment      `gorm:"type:varchar(20);index" json:"sentiment"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	IsResponded  bool       `gorm:"default:false;index" json:"is_responded"`
	ResponseText string     `gorm:"type:text" json:"response_text"`
	StaffName    string     `json:"staff_name"` // responder's display name
	RespondedBy  *uint      `json:"responded_by,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`

	IsEscalated bool `gorm:"default:false;index" json:"is_escalated"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
