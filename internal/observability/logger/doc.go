// Package logger provides the singleton Zap logger with context-based scoping.
//
//   - Singleton: one global instance initialized with Init() in main.
//   - Context scoping: middlewares inject a request-scoped logger carrying
//     request_id / method / path; services pick it up with From(ctx).
//   - Environments: "dev" logs colored console output, "prod" logs JSON.
//
// Usage:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("document stored", logger.ApplicationID(appID))
//
// Never log key material, raw national ID numbers, or extracted document text
// through this package; contact fields go through util.MaskEmail/MaskMobile.
package logger
