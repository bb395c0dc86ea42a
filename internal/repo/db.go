package repo

import (
	"fmt"
	"strings"

	"GophAuth/internal/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// MemoryDSN — in-memory SQLite, используется при пустой строке подключения.
const MemoryDSN = "file::memory:?cache=shared"

// dialectorFor выбирает драйвер по схеме DSN:
// postgres:// и postgresql:// — Postgres, mysql:// — MySQL, иначе путь к файлу SQLite.
func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "mysql://"):
		mysqlDSN, err := normalizeMySQLDSN(strings.TrimPrefix(dsn, "mysql://"))
		if err != nil {
			return nil, err
		}
		return mysql.Open(mysqlDSN), nil
	case dsn == "":
		dsn = MemoryDSN
	}
	// modernc.org/sqlite регистрируется под именем "sqlite" и не требует cgo
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, nil
}

// normalizeMySQLDSN включает parseTime: без него DATETIME не сканируется в time.Time.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// InitDB открывает БД и выполняет миграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Role{}, &model.Session{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
