package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger sends GORM output through the global zerolog logger.
type gormLogger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger logs failed queries at error, slow ones at warn and, at logger.Info, every query at debug.
// Missing records are not errors.
func NewGormLogger(level logger.LogLevel, slowThreshold time.Duration) logger.Interface {
	return &gormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level, slowThreshold: l.slowThreshold}
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		log.Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		log.Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Error().Err(err).Str("component", "gorm").Str("sql", sql).Int64("rows", rows).
			Dur("elapsed", elapsed).Msg("sql query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		log.Warn().Str("component", "gorm").Str("sql", sql).Int64("rows", rows).
			Dur("elapsed", elapsed).Msg("slow sql query")
	case l.level >= logger.Info:
		sql, rows := fc()
		log.Debug().Str("component", "gorm").Str("sql", sql).Int64("rows", rows).
			Dur("elapsed", elapsed).Msg("sql query")
	}
}
