package tdenginesource

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
	_ "github.com/taosdata/driver-go/v3/taosRestful"
)

const defaultPort = "6041"

// Open 通过REST接口打开TDengine连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := convertJdbcUrl(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("taosRestful", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open TDengine connection")
	}
	return rdbms.NewSession(rdbms.TDengine, db), nil
}

// convertJdbcUrl 解析 jdbc:TAOS-RS://host:port/database
func convertJdbcUrl(jdbcUrl, username, password string) (string, error) {
	const prefix = "jdbc:taos-rs://"
	if !strings.HasPrefix(strings.ToLower(jdbcUrl), prefix) {
		return "", errors.Errorf("invalid TDengine JDBC URL: %s", jdbcUrl)
	}
	url := jdbcUrl[len(prefix):]

	hostPort, database, _ := strings.Cut(url, "/")
	if idx := strings.Index(database, "?"); idx != -1 {
		database = database[:idx]
	}
	if hostPort == "" {
		return "", errors.Errorf("host is required in JDBC URL: %s", jdbcUrl)
	}
	if !strings.Contains(hostPort, ":") {
		hostPort += ":" + defaultPort
	}

	return fmt.Sprintf("%s:%s@http(%s)/%s", username, password, hostPort, database), nil
}
