// Command compare_graphs loads two graph snapshots, compares them and writes
// the alignment report as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/compare"
	"github.com/athapong/kgalign/pkg/graph"
	"github.com/athapong/kgalign/pkg/graph/storage"
	"github.com/athapong/kgalign/pkg/graph/visualizer"
)

var (
	sourcePath            = flag.String("source", "", "Path to the source (business) graph JSON snapshot")
	targetPath            = flag.String("target", "", "Path to the target (programmatic) graph JSON snapshot")
	outputPath            = flag.String("output", "report.json", "Path to write the comparison report")
	visualizeDir          = flag.String("visualize", "", "Optional directory for HTML visualizations of both graphs")
	entityThreshold       = flag.Float64("entity-threshold", 0.15, "Entity match acceptance threshold")
	relationshipThreshold = flag.Float64("relationship-threshold", 0.2, "Relationship match acceptance threshold")
	logLevel              = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(level)
	}

	if *sourcePath == "" || *targetPath == "" {
		fmt.Fprintln(os.Stderr, "both -source and -target are required")
		flag.Usage()
		os.Exit(2)
	}

	source, err := loadSnapshot(*sourcePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load source graph")
	}
	target, err := loadSnapshot(*targetPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load target graph")
	}

	config := compare.MatcherConfig{
		EntityThreshold:       *entityThreshold,
		RelationshipThreshold: *relationshipThreshold,
	}
	report := compare.NewComparator(config).Compare(source, target)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to marshal report")
	}
	if err := os.WriteFile(*outputPath, data, 0o644); err != nil {
		logger.WithError(err).Fatal("Failed to write report")
	}
	logger.WithFields(logrus.Fields{
		"report":             *outputPath,
		"overall_similarity": report.OverallSimilarity,
		"compliance_level":   report.Compliance.ComplianceLevel,
	}).Info("Comparison report written")

	if *visualizeDir != "" {
		renderVisualizations(logger, source, target)
	}
}

func renderVisualizations(logger *logrus.Logger, source, target *graph.KnowledgeGraph) {
	if err := os.MkdirAll(*visualizeDir, 0o755); err != nil {
		logger.WithError(err).Error("Failed to create visualization directory")
		return
	}
	graphs := map[string]*graph.KnowledgeGraph{
		"source": source,
		"target": target,
	}
	for name, kg := range graphs {
		out := filepath.Join(*visualizeDir, name+".html")
		if err := visualizer.RenderHTML(kg, name+" graph", out); err != nil {
			logger.WithError(err).WithField("graph", name).Error("Visualization failed")
			continue
		}
		logger.WithField("path", out).Info("Visualization written")
	}
}

func loadSnapshot(path string) (*graph.KnowledgeGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return storage.ImportJSON(data)
}
