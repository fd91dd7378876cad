package postgresqlsource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 打开PostgreSQL连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := convertJdbcUrl(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	return rdbms.NewGormSession(rdbms.PostgreSQL, db)
}

func convertJdbcUrl(jdbcUrl, username, password string) (string, error) {
	// 解析JDBC URL: jdbc:postgresql://host:port/database?参数
	if !strings.HasPrefix(jdbcUrl, "jdbc:postgresql://") {
		return "", errors.Errorf("invalid PostgreSQL JDBC URL: %s", jdbcUrl)
	}
	url := strings.TrimPrefix(jdbcUrl, "jdbc:postgresql://")

	parts := strings.Split(url, "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", errors.Errorf("invalid JDBC URL format: %s", jdbcUrl)
	}
	hostPort := parts[0]
	database := parts[1]

	options := map[string]string{"sslmode": "disable"}
	if idx := strings.Index(database, "?"); idx != -1 {
		for _, kv := range strings.Split(database[idx+1:], "&") {
			if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
				options[k] = v
			}
		}
		database = database[:idx]
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s",
		strings.Replace(hostPort, ":", " port=", 1),
		username,
		password,
		database)

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dsn += fmt.Sprintf(" %s=%s", k, options[k])
	}
	return dsn, nil
}
