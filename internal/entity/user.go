package entity

type User struct {
	Base

	Email        string `gorm:"size:255;unique;not null"`
	Nickname     string `gorm:"size:60;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
