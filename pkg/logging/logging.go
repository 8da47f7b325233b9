package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Options controls Setup.
type Options struct {
	Debug      bool
	AppName    string
	AppVersion string
	LogFile    string // When set, Info and above are also written here with rotation.
}

// Setup builds the global logger. The console logger is zap's production
// config at warn level, or the development config when Debug is set.
func Setup(opts Options) (*zap.Logger, error) {
	var err error
	var cfg zap.Config

	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    opts.AppName,
		"appVersion": opts.AppVersion,
	}

	var buildOpts []zap.Option
	if opts.LogFile != "" {
		fileCore := newFileCore(opts.LogFile, opts.Debug).With([]zapcore.Field{
			zap.String("appName", opts.AppName),
			zap.String("appVersion", opts.AppVersion),
		})
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	Logger, err = cfg.Build(buildOpts...)
	if err != nil {
		Logger = zap.NewNop()
		return Logger, err
	}

	zap.ReplaceGlobals(Logger)
	return Logger, nil
}

// newFileCore writes JSON lines to a lumberjack-rotated file.
func newFileCore(path string, debug bool) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // Megabytes
		MaxBackups: 5,
		MaxAge:     30, // Days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level)
}
