package registry

import (
	"sort"
	"sync"

	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/pkg/errors"
)

// 全局连接器注册表实例
var GlobalRegistry plugin.ConnectorRegistry = NewConnectorRegistry()

// Register 在全局注册表中注册连接器，供插件的init调用，重复注册直接panic
func Register(dbType rdbms.DatabaseType, connector plugin.Connector) {
	if err := GlobalRegistry.Register(dbType.String(), connector); err != nil {
		panic(err)
	}
}

// Open 按连接配置找到连接器并打开会话
func Open(conn plugin.Connection) (*rdbms.Session, error) {
	dbType, err := conn.DatabaseType()
	if err != nil {
		return nil, err
	}
	connector, err := GlobalRegistry.Get(dbType.String())
	if err != nil {
		return nil, err
	}
	return connector.Open(conn)
}

// DefaultConnectorRegistry 默认连接器注册表实现
type DefaultConnectorRegistry struct {
	connectors map[string]plugin.Connector
	mutex      sync.RWMutex
}

func NewConnectorRegistry() *DefaultConnectorRegistry {
	return &DefaultConnectorRegistry{
		connectors: make(map[string]plugin.Connector),
	}
}

func (r *DefaultConnectorRegistry) Register(name string, connector plugin.Connector) error {
	if connector == nil {
		return errors.Errorf("connector '%s' is nil", name)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.connectors[name]; exists {
		return errors.Wrapf(plugin.ErrConnectorExists, "'%s'", name)
	}
	r.connectors[name] = connector
	return nil
}

func (r *DefaultConnectorRegistry) Get(name string) (plugin.Connector, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	connector, exists := r.connectors[name]
	if !exists {
		return nil, errors.Wrapf(plugin.ErrConnectorNotFound, "'%s'", name)
	}
	return connector, nil
}

// List returns the registered names in sorted order.
func (r *DefaultConnectorRegistry) List() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
