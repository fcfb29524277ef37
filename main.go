package main

import (
	"flag"
	"os"

	"medisync/global"
	"medisync/initialize"
	"medisync/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	if err := server.StartHTTPServer(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server failed")
		os.Exit(1)
	}
	global.Logger.Info().Str("host", app.Cfg.HTTP.Host).Int("port", app.Cfg.HTTP.Port).Msg("medisync listening")

	select {}
}
