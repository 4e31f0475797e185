package main

import (
	"embed"

	"github.com/readmelens/readmelens/cmd"
	"github.com/readmelens/readmelens/config"
	"github.com/sirupsen/logrus"
)

//go:embed web/dist/*
var views embed.FS

func main() {
	configCMD := config.ConfigCMD{
		Views: views,
	}
	logrus.SetLevel(logrus.DebugLevel)
	err := cmd.NewRootCmd(configCMD).Execute()
	if err != nil {
		logrus.Fatalf("Error executing command: %v", err)
	}
}
