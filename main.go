package main

import (
	"tempus/core/logger"
	"tempus/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
