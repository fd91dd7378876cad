package databendsource

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/datafuselabs/databend-go"
	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
)

var jdbcPattern = regexp.MustCompile(`^jdbc:databend://([^:/]+):(\d+)/(.+)$`)

// Open 打开Databend连接
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dsn, err := parseDSN(conn.URL, conn.Username, conn.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("databend", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Databend connection")
	}
	return rdbms.NewSession(rdbms.Databend, db), nil
}

// parseDSN 解析JDBC URL为Databend Go driver格式
func parseDSN(jdbcUrl, username, password string) (string, error) {
	matches := jdbcPattern.FindStringSubmatch(jdbcUrl)
	if len(matches) != 4 {
		return "", errors.Errorf("invalid JDBC URL format: %s", jdbcUrl)
	}

	host := matches[1]
	port := matches[2]
	database := matches[3]

	return fmt.Sprintf("databend://%s:%s@%s:%s/%s", username, password, host, port, database), nil
}
