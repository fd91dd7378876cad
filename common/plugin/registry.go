package plugin

// ConnectorRegistry 连接器注册表接口 - 负责连接器的注册和获取
type ConnectorRegistry interface {
	Register(name string, connector Connector) error
	Get(name string) (Connector, error)
	List() []string
}
