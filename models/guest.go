package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PropertyID uint     `gorm:"index;column:property_id" json:"property_id"`
	Property   Property `gorm:"foreignKey:PropertyID" json:"-"`

	FullName    string     `json:"fullName"`
	DateOfBirth *time.Time `json:"dateOfBirth"`

	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	CurrentAddress string `json:"currentAddress"`

	IDType          string `json:"idType"`
	IDNumber        string `json:"idNumber"`
	IDIssuedCountry string `json:"idIssuedCountry"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	// company the guest bills through, if any
	CorporateAccountID *uint `gorm:"index" json:"corporateAccountId,omitempty"`
}
