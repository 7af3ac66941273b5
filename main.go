package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph/storage"
	"github.com/athapong/kgalign/tools"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug("No .env file loaded")
	}

	dataDir := os.Getenv("KGALIGN_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data/graphs"
	}
	store := storage.NewJSONGraphStore(dataDir)

	s := server.NewMCPServer(
		"kgalign",
		"1.0.0",
	)

	enableTools := strings.Split(os.Getenv("ENABLE_TOOLS"), ",")
	isEnabled := func(name string) bool {
		if len(enableTools) == 1 && enableTools[0] == "" {
			return true
		}
		for _, t := range enableTools {
			if strings.TrimSpace(t) == name {
				return true
			}
		}
		return false
	}

	if isEnabled("compare") {
		tools.RegisterCompareTool(s, store)
	}
	if isEnabled("graph") {
		tools.RegisterGraphTools(s, store)
	}
	if isEnabled("extract") {
		tools.RegisterExtractTools(s, store)
	}

	if err := server.ServeStdio(s); err != nil {
		logger.WithError(err).Fatal("MCP server terminated")
	}
}
