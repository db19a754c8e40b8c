// services/staff_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pms-backend/models"
	"pms-backend/utils"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

// StaffClaims are the JWT session claims issued at login.
type StaffClaims struct {
	StaffID    uint   `json:"staffId"`
	PropertyID uint   `json:"propertyId"`
	Role       string `json:"role"`
	jwt.StandardClaims
}

func jwtSecret() []byte {
	return []byte(utils.EnvOrDefault("JWT_SECRET", ""))
}

// CreateStaff validates and creates a staff member with a bcrypt-hashed
// password.
func (s *StaffService) CreateStaff(propertyID uint, fullName, email, phone, role, department, password string) (*models.Staff, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(fullName) == "" {
		return nil, ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var existing models.Staff
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := models.Staff{
		PropertyID: propertyID,
		FullName:   strings.TrimSpace(fullName),
		Email:      email,
		Phone:      strings.TrimSpace(phone),
		Role:       role,
		Department: department,
		Active:     true,
		Password:   string(hash),
	}
	if err := s.DB.Create(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return &staff, nil
}

// Login verifies credentials and issues a signed session token.
func (s *StaffService) Login(email, password string) (string, *models.Staff, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var staff models.Staff
	if err := s.DB.Where("email = ? AND active = ?", email, true).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("db error loading staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := StaffClaims{
		StaffID:    staff.ID,
		PropertyID: staff.PropertyID,
		Role:       staff.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(12 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, &staff, nil
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// ListStaff returns staff for a property, optionally filtered by role.
func (s *StaffService) ListStaff(propertyID uint, role string) ([]models.Staff, error) {
	q := s.DB.Where("property_id = ?", propertyID)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var list []models.Staff
	if err := q.Order("full_name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve staff: %w", err)
	}
	return list, nil
}

// DeactivateStaff soft-disables a login without deleting the row.
func (s *StaffService) DeactivateStaff(propertyID, staffID uint) error {
	res := s.DB.Model(&models.Staff{}).
		Where("id = ? AND property_id = ?", staffID, propertyID).
		Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate staff: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}
