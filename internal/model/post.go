package model

import "time"

// Post is a user-submitted board entry. The table still carries its legacy
// name and the old "subject" title column.
type Post struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"size:255"`
	Subject    *string    `json:"-" gorm:"column:subject;size:255"`
	Content    string     `json:"content" gorm:"type:text"`
	Category   string     `json:"category" gorm:"size:50;not null;index"`
	AuthorID   uint       `json:"user_id" gorm:"column:user_id;not null;index"`
	CreatedAt  time.Time  `json:"created_date" gorm:"column:created_date;index"`
	ModifiedAt *time.Time `json:"modified_date,omitempty" gorm:"column:modified_date"`
	ViewCount  int        `json:"view_count" gorm:"default:0"`
	ImgURL     *string    `json:"img_url,omitempty" gorm:"size:500"`

	// Relations
	User    *User    `json:"-" gorm:"foreignKey:AuthorID"`
	Answers []Answer `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Post) TableName() string {
	return "question"
}

// DisplayTitle prefers Title and falls back to the legacy Subject column.
func (p *Post) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Subject != nil {
		return *p.Subject
	}
	return ""
}

// Answer is an administrator's reply attached to a Post.
type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	AuthorID   uint      `json:"user_id" gorm:"column:user_id;not null"`
	Content    string    `json:"content" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_date" gorm:"column:created_date"`
}

// TableName keeps the legacy table name.
func (Answer) TableName() string {
	return "answer"
}
