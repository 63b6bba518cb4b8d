package main

import (
	"ixbacktest/cmd"
	"os"

	"go.uber.org/zap"
)

func main() {
	zap.S().Infof("starting api at commit %s", os.Getenv("commit_hash"))
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		zap.S().Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	err = deps.ApiHandler.StartApi(deps.Secrets.Api.Port)
	if err != nil {
		zap.S().Fatal(err)
	}
}
