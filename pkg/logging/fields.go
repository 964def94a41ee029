package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain fields

func Component(name string) Field {
	return String("component", name)
}

func NetworkID(id string) Field {
	return String("network_id", id)
}

func SystemID(id string) Field {
	return String("system_id", id)
}

func Criterion(c string) Field {
	return String("criterion", c)
}

func BatchSize(n int) Field {
	return Int("batch_size", n)
}

func Stability(v float64) Field {
	return Float64("stability", v)
}

func Count(n int) Field {
	return Int("count", n)
}
