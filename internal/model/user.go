package model

import "time"

// User stores register operators and administrators.
// Rol: "admin" | "cajero"
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Username     string     `gorm:"uniqueIndex;not null"`
	Nombre       string     `gorm:"not null"`
	Apellido     string     `gorm:"not null"`
	Sucursal     string     `gorm:"not null"`
	PasswordHash string     `gorm:"not null"`
	Rol          string     `gorm:"type:varchar(20);not null"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
