package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// New builds the process logger. Development mode gets the human-readable
// console encoder; everything else logs structured JSON.
func New(appEnv string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return log, nil
}
