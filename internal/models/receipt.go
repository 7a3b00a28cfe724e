package models

// Receipt is an uploaded receipt image awaiting parsing.
type Receipt struct {
	Base
	UserID     uint    `gorm:"not null;index" json:"user"`
	Image      string  `gorm:"not null" json:"image"`
	ParsedText *string `json:"parsed_text"`
}
