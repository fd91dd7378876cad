package job

import (
	"github.com/longkeyy/go-rowset/common/config"
	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/param"
	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rowset"
	"github.com/pkg/errors"
)

// Spec 作业文件中 job 节点的内容
type Spec struct {
	ID             string            `mapstructure:"id"`
	Connection     plugin.Connection `mapstructure:"connection"`
	Query          string            `mapstructure:"query"`
	CountQuery     string            `mapstructure:"countQuery"`
	Parameters     []Parameter       `mapstructure:"parameters"`
	Window         Window            `mapstructure:"window"`
	Page           int               `mapstructure:"page"`
	PageSize       int               `mapstructure:"pageSize"`
	FetchSize      int               `mapstructure:"fetchSize"`
	TimeoutSeconds int               `mapstructure:"timeoutSeconds"`
}

// Parameter 一个位置参数，Value为null时按Type绑定为类型化的NULL
type Parameter struct {
	Type  string      `mapstructure:"type"`
	Value interface{} `mapstructure:"value"`
}

// Window 物化窗口，StartRow从0开始，MaxRows为-1表示不限制
type Window struct {
	StartRow int `mapstructure:"startRow"`
	MaxRows  int `mapstructure:"maxRows"`
}

// ParseSpec 从配置中解析并校验作业定义
func ParseSpec(cfg *config.Configuration) (Spec, error) {
	spec := Spec{Window: Window{MaxRows: rowset.Unbounded}}
	if cfg == nil {
		return spec, errors.WithStack(plugin.ErrConfigNil)
	}
	if err := cfg.Decode("job", &spec); err != nil {
		return spec, err
	}

	if spec.Connection.URL == "" {
		return spec, errors.New("parameter [job.connection.url] is not set")
	}
	if spec.Query == "" {
		return spec, errors.New("parameter [job.query] is not set")
	}
	if spec.Page > 0 && spec.PageSize < 1 {
		return spec, errors.Errorf("parameter [job.pageSize] must be positive when paging, got %d", spec.PageSize)
	}
	if spec.TimeoutSeconds < 0 {
		return spec, errors.Errorf("parameter [job.timeoutSeconds] must not be negative, got %d", spec.TimeoutSeconds)
	}
	return spec, nil
}

// paging reports whether the job runs a single page instead of a window.
func (s Spec) paging() bool { return s.Page > 0 }

// ParameterCache 按声明顺序构建参数缓存，位置从1开始
func (s Spec) ParameterCache() (*param.Cache, error) {
	cache := param.NewWithQuery(s.Query)
	for i, p := range s.Parameters {
		if err := bindParameter(cache, i+1, p); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func bindParameter(cache *param.Cache, position int, p Parameter) error {
	if p.Type == "" {
		// 未声明类型，原样保存；null值在绑定时报错
		return cache.SetObject(position, p.Value)
	}

	sqlType, err := param.ParseSQLType(p.Type)
	if err != nil {
		return errors.Wrapf(err, "parameter %d", position)
	}
	if p.Value == nil {
		return cache.SetNull(position, sqlType)
	}

	v := element.FromDriver(p.Value)
	switch sqlType {
	case param.TinyInt, param.SmallInt, param.Integer, param.BigInt:
		n, err := v.GetAsLong()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetLong(position, n)
	case param.Float, param.Real, param.Double:
		f, err := v.GetAsDouble()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetDouble(position, f)
	case param.Numeric, param.Decimal:
		d, err := v.GetAsDecimal()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetDecimal(position, d)
	case param.Bit, param.Boolean:
		b, err := v.GetAsBool()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetBool(position, b)
	case param.Date, param.Time, param.Timestamp:
		t, err := v.GetAsDate()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetTime(position, t)
	case param.Binary, param.VarBinary, param.LongVarBinary, param.Blob:
		b, err := v.GetAsBytes()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetBytes(position, b)
	case param.Char, param.VarChar, param.LongVarChar, param.Clob:
		str, err := v.GetAsString()
		if err != nil {
			return errors.Wrapf(err, "parameter %d", position)
		}
		return cache.SetString(position, str)
	}
	return cache.SetObject(position, p.Value)
}
