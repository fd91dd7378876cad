package rdbms

import (
	"strings"

	"github.com/pkg/errors"
)

// DatabaseType enumerates the databases a session can be opened against.
type DatabaseType int

const (
	SQLite DatabaseType = iota
	MySQL
	PostgreSQL
	SQLServer
	Oracle
	ClickHouse
	Databend
	TDengine
)

var databaseTypeNames = []string{
	SQLite:     "sqlite",
	MySQL:      "mysql",
	PostgreSQL: "postgresql",
	SQLServer:  "sqlserver",
	Oracle:     "oracle",
	ClickHouse: "clickhouse",
	Databend:   "databend",
	TDengine:   "tdengine",
}

// String returns the connector name for the database type.
func (dt DatabaseType) String() string {
	if dt < 0 || int(dt) >= len(databaseTypeNames) {
		return "unknown"
	}
	return databaseTypeNames[dt]
}

// ParseDatabaseType 按名称解析数据库类型，大小写不敏感
func ParseDatabaseType(name string) (DatabaseType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "postgres", "pg":
		return PostgreSQL, nil
	case "mssql":
		return SQLServer, nil
	case "taos":
		return TDengine, nil
	}
	for i, typeName := range databaseTypeNames {
		if typeName == n {
			return DatabaseType(i), nil
		}
	}
	return 0, errors.Errorf("unsupported database type: %s", name)
}

// DetectDatabaseType 根据连接URL识别数据库类型
func DetectDatabaseType(url string) (DatabaseType, error) {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "postgresql"):
		return PostgreSQL, nil
	case strings.Contains(u, "mysql"):
		return MySQL, nil
	case strings.Contains(u, "sqlite"):
		return SQLite, nil
	case strings.Contains(u, "sqlserver"):
		return SQLServer, nil
	case strings.Contains(u, "oracle"):
		return Oracle, nil
	case strings.Contains(u, "clickhouse"):
		return ClickHouse, nil
	case strings.Contains(u, "databend"):
		return Databend, nil
	case strings.Contains(u, "taos"), strings.Contains(u, "tdengine"):
		return TDengine, nil
	}
	return 0, errors.Errorf("cannot detect database type from url: %s", url)
}
