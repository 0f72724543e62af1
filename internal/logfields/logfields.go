package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyVersion    = "version"
	KeyType       = "type"
	KeyKind       = "member_kind"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyKeyPath    = "key_path"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyAddr       = "addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Version(v string) slog.Attr    { return slog.String(KeyVersion, v) }
func Type(name string) slog.Attr    { return slog.String(KeyType, name) }
func Kind(k string) slog.Attr       { return slog.String(KeyKind, k) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func KeyPathRef(k string) slog.Attr { return slog.String(KeyKeyPath, k) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr     { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }
func Addr(a string) slog.Attr       { return slog.String(KeyAddr, a) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
