package sqlitesource

import (
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开SQLite数据库文件
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dbPath, err := convertJdbcUrl(conn.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to SQLite")
	}
	return rdbms.NewGormSession(rdbms.SQLite, db)
}

func convertJdbcUrl(jdbcUrl string) (string, error) {
	// 解析JDBC URL: jdbc:sqlite:path/to/database.db
	if !strings.HasPrefix(jdbcUrl, "jdbc:sqlite:") {
		return "", errors.Errorf("invalid SQLite JDBC URL: %s", jdbcUrl)
	}

	dbPath := strings.TrimPrefix(jdbcUrl, "jdbc:sqlite:")
	if dbPath == "" {
		return "", errors.Errorf("database path is empty in JDBC URL: %s", jdbcUrl)
	}
	return dbPath, nil
}
