package queue

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// zerologAdapter implements asynq.Logger on the global zerolog logger.
type zerologAdapter struct{}

func (zerologAdapter) Debug(args ...any) { log.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (zerologAdapter) Info(args ...any) { log.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (zerologAdapter) Warn(args ...any) { log.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (zerologAdapter) Error(args ...any) { log.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (zerologAdapter) Fatal(args ...any) { log.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
