package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reservas-backend/models"
)

// InitDatabase opens the MySQL connection, configures the pool, runs the
// migrations and seeds the room catalog when it is empty.
func InitDatabase(cfg *DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	SeedRooms(db)
	return db, nil
}

// Migrate runs AutoMigrate in parent -> child order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Room{},
		&models.Reservation{},
		&models.ReservedDate{},
		&models.Refund{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// SeedRooms creates a starter room catalog the first time the service runs
// against an empty database.
func SeedRooms(db *gorm.DB) {
	var count int64
	db.Model(&models.Room{}).Count(&count)
	if count > 0 {
		return
	}

	rooms := []models.Room{
		{Numero: "101", Nombre: "Doble Estándar", Tipo: "doble", Descripcion: "Habitación doble con vista al jardín", Capacidad: 2, Precio: 100, Imagen: "doble1.jpg", Estado: models.RoomAvailable},
		{Numero: "102", Nombre: "Doble Superior", Tipo: "doble", Descripcion: "Habitación doble con balcón", Capacidad: 2, Precio: 120, Imagen: "doble2.jpg", Estado: models.RoomAvailable},
		{Numero: "201", Nombre: "Familiar", Tipo: "familiar", Descripcion: "Habitación familiar para cuatro personas", Capacidad: 4, Precio: 180, Imagen: "familiar1.jpg", Estado: models.RoomAvailable},
		{Numero: "301", Nombre: "Suite", Tipo: "suite", Descripcion: "Suite con sala de estar", Capacidad: 3, Precio: 250, Imagen: "suite1.jpg", Estado: models.RoomAvailable},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Room catalog seeded")
}
