package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"not null"                 json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"   json:"is_admin"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string  `gorm:"not null"                     json:"name"`
	Price       float64 `gorm:"not null"                     json:"price"`
	Description string  `gorm:"not null"                     json:"description"`
	Img         string  `gorm:"not null;default:default.jpg" json:"img"`
}
