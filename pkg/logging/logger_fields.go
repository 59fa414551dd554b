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

func Float64(key string, value float64) Field {
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

// Component names the subsystem emitting the log line
func Component(name string) Field {
	return String("component", name)
}

// Domain field helpers for conversion runs

func Source(name string) Field {
	return String("source", name)
}

func RecordID(elabid string) Field {
	return String("elabid", elabid)
}

func NodeKey(key string) Field {
	return String("node_key", key)
}

func Predicate(qname string) Field {
	return String("predicate", qname)
}

func Prefix(prefix string) Field {
	return String("prefix", prefix)
}

func Triples(n int) Field {
	return Int("triples", n)
}

func Records(n int) Field {
	return Int("records", n)
}

func Skipped(n int) Field {
	return Int("skipped", n)
}

func Path(p string) Field {
	return String("path", p)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
