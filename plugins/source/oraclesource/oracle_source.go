package oraclesource

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	go_ora "github.com/sijms/go-ora/v2"
)

const defaultPort = 1521

// Open 打开Oracle连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := convertJdbcUrl(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Oracle connection")
	}
	return rdbms.NewSession(rdbms.Oracle, db), nil
}

// convertJdbcUrl 支持以下格式:
// oracle://host:port/service
// jdbc:oracle:thin:@//host:port/service
// jdbc:oracle:thin:@host:port/service
func convertJdbcUrl(jdbcUrl, username, password string) (string, error) {
	url := jdbcUrl
	switch {
	case strings.HasPrefix(url, "oracle://"):
		url = strings.TrimPrefix(url, "oracle://")
	case strings.HasPrefix(url, "jdbc:oracle:thin:@"):
		url = strings.TrimPrefix(strings.TrimPrefix(url, "jdbc:oracle:thin:@"), "//")
	default:
		return "", errors.Errorf("invalid Oracle JDBC URL: %s", jdbcUrl)
	}

	hostPort, service, ok := strings.Cut(url, "/")
	if !ok || hostPort == "" || service == "" {
		return "", errors.Errorf("service name is required in JDBC URL: %s", jdbcUrl)
	}

	host, port := hostPort, defaultPort
	if h, p, found := strings.Cut(hostPort, ":"); found {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", errors.Wrapf(err, "invalid port in JDBC URL: %s", jdbcUrl)
		}
		host, port = h, n
	}

	return go_ora.BuildUrl(host, port, service, username, password, nil), nil
}
