package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const Schema = "carwash"

func DSN(host string, port string, user string, password string, dbName string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
}

// GormConfig is shared between the server and the repository tests so table names match.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   Schema + ".",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(host, port, user, password, dbName)), GormConfig())
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS ` + Schema)
	if x.Error != nil {
		return nil, x.Error
	}
	return db, nil
}
