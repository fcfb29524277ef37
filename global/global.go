package global

import (
	"medisync/config"

	"github.com/rs/zerolog"
)

var (
	Config *config.Config
	Logger zerolog.Logger
)
