package clickhousesource

import (
	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/longkeyy/go-rowset/core/registry"
)

func init() {
	registry.Register(rdbms.ClickHouse, plugin.ConnectorFunc(Open))
}
