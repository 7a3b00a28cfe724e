package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Username    string     `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `gorm:"size:30;not null" json:"first_name"`
	LastName    string     `gorm:"size:30;not null" json:"last_name"`
	IsActive    bool       `gorm:"default:true" json:"-"`
	LastLoginAt *time.Time `json:"-"`
	Categories  []Category `gorm:"foreignKey:UserID" json:"-"`
	Spendings   []Spending `gorm:"foreignKey:UserID" json:"-"`
}

// Registration is the payload used to create an account.
type Registration struct {
	Username  string `json:"username" validate:"notblank,max=30,username"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"notblank,max=30"`
	LastName  string `json:"last_name" validate:"notblank,max=30"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}
