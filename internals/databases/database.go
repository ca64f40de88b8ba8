package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studentrecords_backend/internals/configs"
	attendanceModel "studentrecords_backend/internals/features/school/attendance/model"
	resultModel "studentrecords_backend/internals/features/school/result/model"
	studentModel "studentrecords_backend/internals/features/school/student/model"
	subjectModel "studentrecords_backend/internals/features/school/subject/model"
	authModel "studentrecords_backend/internals/features/users/auth/model"
	userModel "studentrecords_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "disable")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=studentrecords",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // works behind PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("[ERROR] DB connection failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync with the models, including the composite
// unique indexes the ledgers rely on.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&studentModel.StudentProfileModel{},
		&studentModel.ClassRollCounterModel{},
		&subjectModel.SubjectModel{},
		&resultModel.ResultModel{},
		&attendanceModel.AttendanceModel{},
		&attendanceModel.TotalClassCountModel{},
	); err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}
	log.Println("[INFO] migrations applied.")
}
