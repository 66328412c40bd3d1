package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	name      string
	level     atomicLevel
	appenders []Appender
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.write(DEBUG, msg, keysAndValues)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.write(WARN, msg, keysAndValues)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.write(ERROR, msg, keysAndValues)
}

func (imp *impl) Sync() error {
	return multierr.Combine(lo.Map(imp.appenders, func(appender Appender, _ int) error {
		return appender.Sync()
	})...)
}

// write must be called directly from the exported logging methods so that the caller lookup lands on
// their caller.
func (imp *impl) write(level Level, msg string, keysAndValues []interface{}) {
	if level < imp.level.Get() {
		return
	}
	entry := zapcore.Entry{
		LoggerName: imp.name,
		Level:      level.AsZap(),
		Time:       time.Now().UTC(),
		Message:    msg,
		Caller:     caller(),
	}
	fields := toFields(keysAndValues)
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// toFields pairs each key with the value after it. A trailing key without a value is kept with a
// placeholder value.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	return lo.Map(lo.Chunk(keysAndValues, 2), func(pair []interface{}, _ int) zapcore.Field {
		key := fmt.Sprint(pair[0])
		if len(pair) == 1 {
			return zap.String(key, "unpaired log key")
		}
		return zap.Any(key, pair[1])
	})
}

// caller locates the code calling Debugw, Warnw or Errorw.
func caller() zapcore.EntryCaller {
	const skip = 3 // caller, write, the exported method
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	c := zapcore.NewEntryCaller(pc, file, line, true)
	if fn := runtime.FuncForPC(pc); fn != nil {
		c.Function = fn.Name()
	}
	return c
}
