package main

import (
	"github.com/longkeyy/go-rowset/core/engine"

	// 导入连接器以触发注册
	_ "github.com/longkeyy/go-rowset/plugins/source/clickhousesource"
	_ "github.com/longkeyy/go-rowset/plugins/source/databendsource"
	_ "github.com/longkeyy/go-rowset/plugins/source/mysqlsource"
	_ "github.com/longkeyy/go-rowset/plugins/source/oraclesource"
	_ "github.com/longkeyy/go-rowset/plugins/source/postgresqlsource"
	_ "github.com/longkeyy/go-rowset/plugins/source/sqlitesource"
	_ "github.com/longkeyy/go-rowset/plugins/source/sqlserversource"
	_ "github.com/longkeyy/go-rowset/plugins/source/tdenginesource"
)

var version = "dev"

func main() {
	engine.Main(version)
}
