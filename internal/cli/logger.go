package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes JSON to --log_file when set, otherwise console output to
// stderr. Commands that own the terminal pass quiet and get a no-op logger
// unless a file was asked for. The returned func flushes the logger and
// closes the log file; call it once the command is done.
func newLogger(conf *viper.Viper, quiet bool) (*zap.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(conf.GetString(flagLogLevel))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "--%s", flagLogLevel)
	}
	path := conf.GetString(flagLogFile)
	if path == "" {
		if quiet {
			return zap.NewNop(), func() {}, nil
		}
		enc := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), lvl)
		log := zap.New(core)
		return log, func() { _ = log.Sync() }, nil
	}
	sink, closeSink, err := zap.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, lvl)
	log := zap.New(core)
	return log, func() {
		_ = log.Sync()
		closeSink()
	}, nil
}
