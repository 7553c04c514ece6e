package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Field keeps callers off the zap import
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Err(err error) Field {
	return zap.Error(err)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Float64(key string, val float64) Field {
	return zap.Float64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

func Time(key string, val time.Time) Field {
	return zap.Time(key, val)
}

// UUID logs an id in its canonical string form
func UUID(key string, val uuid.UUID) Field {
	return zap.String(key, val.String())
}

// Amount logs a money value with two fixed decimals
func Amount(key string, val decimal.Decimal) Field {
	return zap.String(key, val.StringFixed(2))
}
