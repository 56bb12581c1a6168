package models

import "gorm.io/gorm"

// DefaultLaunchDiscount is the percentage applied to every school that signs
// up before launch.
const DefaultLaunchDiscount = 50

type WaitlistEntry struct {
	gorm.Model
	SchoolName  string `gorm:"not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	PhoneNumber string
	Discount    int `gorm:"not null;default:50"`
}
