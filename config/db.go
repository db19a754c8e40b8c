package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "pms_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// Migrate runs AutoMigrate in parent->child order. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.CorporateAccount{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Folio{},
		&models.FolioItem{},
		&models.Payment{},
		&models.HousekeepingTask{},
		&models.Outlet{},
		&models.MenuItem{},
		&models.PosOrder{},
		&models.PosOrderItem{},
		&models.NightAuditReport{},
	)
}

// SeedDatabase ensures a default property, a manager login and the standard
// room types exist, so a fresh database is usable immediately.
func SeedDatabase() {
	var propCount int64
	DB.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		prop := models.Property{
			Name:              "Main Property",
			Currency:          "USD",
			TaxRate:           decimal.NewFromInt(10),
			ServiceChargeRate: decimal.NewFromInt(5),
		}
		if err := DB.Create(&prop).Error; err != nil {
			log.Printf("warning: failed to seed default property: %v", err)
		} else {
			log.Println("Default property seeded")
		}
	}

	var prop models.Property
	if err := DB.First(&prop).Error; err != nil {
		log.Printf("warning: no property available for seeding: %v", err)
		return
	}

	var staffCount int64
	DB.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_MANAGER_PASSWORD", "manager123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default manager password: %v", err)
		} else {
			manager := models.Staff{
				PropertyID: prop.ID,
				FullName:   "Property Manager",
				Email:      "manager@pms.local",
				Role:       models.RoleManager,
				Department: "management",
				Active:     true,
				Password:   string(hash),
			}
			if err := DB.Create(&manager).Error; err != nil {
				log.Printf("warning: failed to create default manager: %v", err)
			} else {
				log.Println("Default manager seeded")
			}
		}
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{PropertyID: prop.ID, TypeName: "Standard", Description: "Standard Room", MaxGuests: 2, BaseRate: decimal.NewFromInt(80)},
			{PropertyID: prop.ID, TypeName: "Superior", Description: "Superior Room", MaxGuests: 3, BaseRate: decimal.NewFromInt(110)},
			{PropertyID: prop.ID, TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4, BaseRate: decimal.NewFromInt(150)},
			{PropertyID: prop.ID, TypeName: "Suite", Description: "Suite", MaxGuests: 5, BaseRate: decimal.NewFromInt(220)},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
