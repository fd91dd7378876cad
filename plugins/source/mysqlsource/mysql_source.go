package mysqlsource

import (
	"fmt"
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开MySQL连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := convertJdbcUrl(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MySQL")
	}
	return rdbms.NewGormSession(rdbms.MySQL, db)
}

func convertJdbcUrl(jdbcUrl, username, password string) (string, error) {
	// 解析JDBC URL: jdbc:mysql://host:port/database?参数
	if !strings.HasPrefix(jdbcUrl, "jdbc:mysql://") {
		return "", errors.Errorf("invalid MySQL JDBC URL: %s", jdbcUrl)
	}
	url := strings.TrimPrefix(jdbcUrl, "jdbc:mysql://")

	parts := strings.SplitN(url, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", errors.Errorf("invalid JDBC URL format: %s", jdbcUrl)
	}
	hostPort := parts[0]

	// 分离数据库名和参数
	database, params := parts[1], ""
	if idx := strings.Index(database, "?"); idx != -1 {
		database, params = database[:idx], database[idx+1:]
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local",
		username,
		password,
		hostPort,
		database)
	if params != "" {
		dsn += "&" + params
	}
	return dsn, nil
}
