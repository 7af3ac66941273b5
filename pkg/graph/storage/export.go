package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/kgalign/pkg/graph"
)

// Export formats.
const (
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatGraphML = "graphml"
)

// ExportAll writes kg to every supported format under dir, using baseName
// for the file stem. Formats fail independently: a failed format is logged
// and omitted from the returned format-to-path map.
func ExportAll(kg *graph.KnowledgeGraph, dir, baseName string) map[string]string {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	written := make(map[string]string)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.WithError(err).Error("Failed to create export directory")
		return written
	}

	exporters := []struct {
		format string
		run    func(*graph.KnowledgeGraph, string) error
	}{
		{FormatJSON, exportJSON},
		{FormatCSV, exportCSV},
		{FormatGraphML, exportGraphML},
	}
	for _, e := range exporters {
		path := filepath.Join(dir, baseName+"."+e.format)
		if err := e.run(kg, path); err != nil {
			logger.WithError(err).WithField("format", e.format).Error("Graph export failed")
			continue
		}
		written[e.format] = path
	}
	return written
}

func exportJSON(kg *graph.KnowledgeGraph, path string) error {
	data, err := json.MarshalIndent(kg.Snapshot(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal graph")
	}
	return os.WriteFile(path, data, 0o644)
}

// exportCSV writes the edge list with resolved endpoint texts.
func exportCSV(kg *graph.KnowledgeGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create CSV file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"source_id", "source_text", "relation", "target_id", "target_text"}); err != nil {
		return err
	}
	for _, r := range kg.Relationships() {
		source, _ := kg.GetEntity(r.SourceID)
		target, _ := kg.GetEntity(r.TargetID)
		if err := w.Write([]string{r.SourceID, source.Text, r.Relation, r.TargetID, target.Text}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportGraphML(kg *graph.KnowledgeGraph, path string) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">` + "\n")
	buf.WriteString(`  <key id="text" for="node" attr.name="text" attr.type="string"/>` + "\n")
	buf.WriteString(`  <key id="type" for="node" attr.name="type" attr.type="string"/>` + "\n")
	buf.WriteString(`  <key id="relation" for="edge" attr.name="relation" attr.type="string"/>` + "\n")
	fmt.Fprintf(&buf, `  <graph id="%s" edgedefault="directed">`+"\n", xmlEscape(kg.GraphType()))

	for _, e := range kg.Entities() {
		fmt.Fprintf(&buf, `    <node id="%s">`+"\n", xmlEscape(e.ID))
		fmt.Fprintf(&buf, `      <data key="text">%s</data>`+"\n", xmlEscape(e.Text))
		fmt.Fprintf(&buf, `      <data key="type">%s</data>`+"\n", xmlEscape(e.Type))
		buf.WriteString("    </node>\n")
	}
	for _, r := range kg.Relationships() {
		fmt.Fprintf(&buf, `    <edge id="%s" source="%s" target="%s">`+"\n",
			xmlEscape(r.ID), xmlEscape(r.SourceID), xmlEscape(r.TargetID))
		fmt.Fprintf(&buf, `      <data key="relation">%s</data>`+"\n", xmlEscape(r.Relation))
		buf.WriteString("    </edge>\n")
	}
	buf.WriteString("  </graph>\n</graphml>\n")

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
