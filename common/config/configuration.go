package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Configuration 按点分路径访问的JSON配置，例如 GetString("job.query")
type Configuration struct {
	data map[string]interface{}
}

func NewConfiguration() *Configuration {
	return &Configuration{
		data: make(map[string]interface{}),
	}
}

func NewConfigurationFromMap(data map[string]interface{}) *Configuration {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Configuration{
		data: data,
	}
}

func FromJSON(jsonStr string) (*Configuration, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, errors.Wrap(err, "parse configuration")
	}
	return NewConfigurationFromMap(data), nil
}

// FromFile 读取作业文件
func FromFile(filename string) (*Configuration, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read configuration file %s", filename)
	}
	return FromJSON(string(content))
}

func (c *Configuration) Set(path string, value interface{}) {
	keys := strings.Split(path, ".")
	current := c.data

	for i, key := range keys {
		if i == len(keys)-1 {
			current[key] = value
			return
		}
		next, ok := current[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[key] = next
		}
		current = next
	}
}

// Get 返回路径对应的值，路径不存在时返回nil
func (c *Configuration) Get(path string) interface{} {
	var current interface{} = c.data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		if current, ok = m[key]; !ok {
			return nil
		}
	}
	return current
}

func (c *Configuration) GetString(path string) string {
	value := c.Get(path)
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}

func (c *Configuration) GetStringWithDefault(path, defaultValue string) string {
	value := c.GetString(path)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Configuration) GetInt(path string) int {
	switch v := c.Get(path).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return 0
}

func (c *Configuration) GetIntWithDefault(path string, defaultValue int) int {
	if c.Get(path) == nil {
		return defaultValue
	}
	return c.GetInt(path)
}

func (c *Configuration) GetBool(path string) bool {
	switch v := c.Get(path).(type) {
	case bool:
		return v
	case string:
		return strings.ToLower(v) == "true"
	}
	return false
}

func (c *Configuration) GetList(path string) []interface{} {
	list, _ := c.Get(path).([]interface{})
	return list
}

// GetConfiguration 返回子配置，路径不存在或不是对象时返回空配置
func (c *Configuration) GetConfiguration(path string) *Configuration {
	if configMap, ok := c.Get(path).(map[string]interface{}); ok {
		return NewConfigurationFromMap(configMap)
	}
	return NewConfiguration()
}

// GetListConfiguration 返回对象数组，非对象元素被忽略
func (c *Configuration) GetListConfiguration(path string) []*Configuration {
	list := c.GetList(path)
	if list == nil {
		return nil
	}

	result := make([]*Configuration, 0, len(list))
	for _, item := range list {
		if configMap, ok := item.(map[string]interface{}); ok {
			result = append(result, NewConfigurationFromMap(configMap))
		}
	}
	return result
}

// Decode 将路径下的内容解码到结构体，字段按mapstructure标签匹配，
// 数字与字符串之间做宽松转换
func (c *Configuration) Decode(path string, out interface{}) error {
	var input interface{} = c.data
	if path != "" {
		input = c.Get(path)
	}
	if input == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "create configuration decoder")
	}
	if err := decoder.Decode(input); err != nil {
		return errors.Wrapf(err, "decode configuration %q", path)
	}
	return nil
}

func (c *Configuration) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode configuration")
	}
	return string(bytes), nil
}

func (c *Configuration) IsExists(path string) bool {
	return c.Get(path) != nil
}
