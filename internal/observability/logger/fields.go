package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard HTTP fields.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

// Domain fields.

// ApplicationID tags the verification application being processed.
func ApplicationID(v string) zap.Field { return zap.String("application_id", v) }

// PublicID tags the minted public tourist identifier.
func PublicID(v string) zap.Field { return zap.String("public_id", v) }

// ApplicationStatus tags the state-machine status.
func ApplicationStatus(v string) zap.Field { return zap.String("status", v) }

// MediaType tags the declared media type of an upload.
func MediaType(v string) zap.Field { return zap.String("media_type", v) }

// BlobName tags the ciphertext file name in the content directory.
func BlobName(v string) zap.Field { return zap.String("blob", v) }

// Outcome tags a pipeline outcome ("verified", "manual_review", ...).
func Outcome(v string) zap.Field { return zap.String("outcome", v) }

// System fields.

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// Generic fields.

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func Count(v int) zap.Field              { return zap.Int("count", v) }
func String(key, v string) zap.Field     { return zap.String(key, v) }
func Int(key string, v int) zap.Field    { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field  { return zap.Bool(key, v) }
