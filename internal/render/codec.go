package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/nitinet/dblink-core/internal/types"
)

// timeLayouts are tried in order when a date arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SerializeValue converts v into a value the driver can bind.
func (b Base) SerializeValue(v any, t types.DataType) (any, error) {
	if v == nil {
		return nil, nil
	}
	if t == types.TypeUnknown {
		t = InferType(v)
	}

	switch t {
	case types.TypeBoolean:
		flag, ok := v.(bool)
		if !ok || b.Capabilities.NativeBoolean {
			return v, nil
		}
		if flag {
			return int64(1), nil
		}
		return int64(0), nil
	case types.TypeDate:
		ts, ok := v.(time.Time)
		if !ok || b.Capabilities.NativeTime {
			return v, nil
		}
		return ts.UTC().Format(time.RFC3339Nano), nil
	case types.TypeJSON, types.TypeArray:
		if raw, ok := v.([]byte); ok {
			return string(raw), nil
		}
		if s, ok := v.(string); ok {
			return s, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s value: %w", t, err)
		}
		return string(data), nil
	default:
		return v, nil
	}
}

// DeserializeValue converts a scanned driver value into its Go representation.
func (b Base) DeserializeValue(v any, t types.DataType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case types.TypeBoolean:
		return toBool(v)
	case types.TypeNumber:
		if raw, ok := textOf(v); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse number %q: %w", raw, err)
			}
			return f, nil
		}
		return v, nil
	case types.TypeBigInt:
		if raw, ok := textOf(v); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse integer %q: %w", raw, err)
			}
			return n, nil
		}
		return v, nil
	case types.TypeString:
		if raw, ok := v.([]byte); ok {
			return string(raw), nil
		}
		return v, nil
	case types.TypeDate:
		if raw, ok := textOf(v); ok {
			return parseTime(raw)
		}
		return v, nil
	case types.TypeJSON, types.TypeArray:
		raw, ok := textOf(v)
		if !ok {
			return v, nil
		}
		var out any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s value: %w", t, err)
		}
		return out, nil
	default:
		if raw, ok := v.([]byte); ok && t != types.TypeBinary {
			return string(raw), nil
		}
		return v, nil
	}
}

// InferType guesses the DataType of a Go value.
func InferType(v any) types.DataType {
	switch v.(type) {
	case nil:
		return types.TypeUnknown
	case bool:
		return types.TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return types.TypeBigInt
	case float32, float64:
		return types.TypeNumber
	case string:
		return types.TypeString
	case []byte:
		return types.TypeBinary
	case time.Time:
		return types.TypeDate
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return types.TypeArray
	case reflect.Map, reflect.Struct:
		return types.TypeJSON
	default:
		return types.TypeUnknown
	}
}

// TypeFromDatabase maps a driver column type name to a DataType.
func TypeFromDatabase(name string) types.DataType {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
		return types.TypeArray
	}

	switch name {
	case "BOOL", "BOOLEAN", "BIT":
		return types.TypeBoolean
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "SMALLINT", "BIGINT", "TINYINT", "MEDIUMINT", "SERIAL", "BIGSERIAL":
		return types.TypeBigInt
	case "FLOAT", "FLOAT4", "FLOAT8", "REAL", "DOUBLE", "DOUBLE PRECISION", "DECIMAL", "NUMERIC", "MONEY":
		return types.TypeNumber
	case "CHAR", "VARCHAR", "NCHAR", "NVARCHAR", "TEXT", "NTEXT", "BPCHAR", "UUID", "UNIQUEIDENTIFIER", "LONGTEXT", "MEDIUMTEXT", "TINYTEXT":
		return types.TypeString
	case "BLOB", "BYTEA", "BINARY", "VARBINARY", "LONGBLOB", "MEDIUMBLOB", "TINYBLOB", "IMAGE":
		return types.TypeBinary
	case "DATE", "TIME", "DATETIME", "DATETIME2", "DATETIMEOFFSET", "TIMESTAMP", "TIMESTAMPTZ", "SMALLDATETIME":
		return types.TypeDate
	case "JSON", "JSONB":
		return types.TypeJSON
	default:
		return types.TypeUnknown
	}
}

func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}

func toBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case int32:
		return x != 0, nil
	case int:
		return x != 0, nil
	case []byte, string:
		raw, _ := textOf(x)
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse boolean %q: %w", raw, err)
		}
		return b, nil
	default:
		return v, nil
	}
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q", raw)
}
