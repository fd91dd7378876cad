package sqlserversource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开SQL Server连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := convertJdbcUrl(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlserver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to SQL Server")
	}
	return rdbms.NewGormSession(rdbms.SQLServer, db)
}

func convertJdbcUrl(jdbcUrl, username, password string) (string, error) {
	// 解析JDBC URL: jdbc:sqlserver://host:port;DatabaseName=database
	if !strings.HasPrefix(jdbcUrl, "jdbc:sqlserver://") {
		return "", errors.Errorf("invalid SQL Server JDBC URL: %s", jdbcUrl)
	}
	url := strings.TrimPrefix(jdbcUrl, "jdbc:sqlserver://")

	parts := strings.Split(url, ";")
	if len(parts) < 2 {
		return "", errors.Errorf("invalid JDBC URL format: %s", jdbcUrl)
	}
	hostPort := parts[0]

	params := make(map[string]string)
	for _, p := range parts[1:] {
		if k, v, ok := strings.Cut(p, "="); ok && k != "" {
			params[k] = v
		}
	}

	database, exists := params["DatabaseName"]
	if !exists || database == "" {
		return "", errors.New("DatabaseName is required in JDBC URL")
	}
	delete(params, "DatabaseName")

	dsn := fmt.Sprintf("sqlserver://%s:%s@%s?database=%s",
		username,
		password,
		hostPort,
		database)

	// 其他参数按名称排序追加
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dsn += fmt.Sprintf("&%s=%s", k, params[k])
	}
	return dsn, nil
}
