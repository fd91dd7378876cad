package clickhousesource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
)

const defaultPort = 9000

// Open 打开ClickHouse连接，使用原生协议的database/sql封装
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	options, err := parseConnectionString(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}
	return rdbms.NewSession(rdbms.ClickHouse, clickhouse.OpenDB(options)), nil
}

// parseConnectionString 解析 clickhouse://host:port/database 或
// jdbc:clickhouse://host:port/database 格式的连接字符串
func parseConnectionString(jdbcUrl, username, password string) (*clickhouse.Options, error) {
	url := strings.TrimPrefix(jdbcUrl, "jdbc:")
	if !strings.HasPrefix(url, "clickhouse://") {
		return nil, errors.Errorf("invalid ClickHouse URL format: %s", jdbcUrl)
	}

	url = strings.TrimPrefix(url, "clickhouse://")
	parts := strings.Split(url, "/")
	if len(parts) != 2 || parts[0] == "" {
		return nil, errors.Errorf("invalid ClickHouse URL format: %s", jdbcUrl)
	}

	hostPort := parts[0]
	database := parts[1]

	host := hostPort
	port := defaultPort // 默认端口
	if h, p, ok := strings.Cut(hostPort, ":"); ok {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	return &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", host, port)},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	}, nil
}
