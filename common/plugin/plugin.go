package plugin

import (
	"github.com/longkeyy/go-rowset/common/rdbms"
)

// Connection 连接配置，对应作业文件中的 job.connection
type Connection struct {
	Dialect  string `mapstructure:"dialect" json:"dialect"`
	URL      string `mapstructure:"url" json:"url"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
}

// DatabaseType 优先使用显式配置的方言，否则根据URL识别
func (c Connection) DatabaseType() (rdbms.DatabaseType, error) {
	if c.Dialect != "" {
		return rdbms.ParseDatabaseType(c.Dialect)
	}
	return rdbms.DetectDatabaseType(c.URL)
}

// Connector 打开某一种数据库的查询会话
type Connector interface {
	Open(conn Connection) (*rdbms.Session, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(conn Connection) (*rdbms.Session, error)

func (f ConnectorFunc) Open(conn Connection) (*rdbms.Session, error) {
	return f(conn)
}
