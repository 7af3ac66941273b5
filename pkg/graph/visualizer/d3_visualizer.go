// Package visualizer renders a knowledge graph as a standalone HTML page
// with a D3 force-directed layout. Rendering is ancillary: a failure here
// never affects the graph or a comparison run.
package visualizer

import (
	"encoding/json"
	"html/template"
	"os"

	"github.com/pkg/errors"

	"github.com/athapong/kgalign/pkg/graph"
)

type d3Node struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Group string `json:"group"`
}

type d3Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

type pageData struct {
	Title string
	Nodes template.JS
	Links template.JS
}

// RenderHTML writes a self-contained visualization of kg to path.
func RenderHTML(kg *graph.KnowledgeGraph, title, path string) error {
	nodes := make([]d3Node, 0, kg.EntityCount())
	for _, e := range kg.Entities() {
		nodes = append(nodes, d3Node{ID: e.ID, Text: e.Text, Type: e.Type, Group: e.Type})
	}
	links := make([]d3Link, 0, kg.RelationshipCount())
	for _, r := range kg.Relationships() {
		links = append(links, d3Link{Source: r.SourceID, Target: r.TargetID, Relation: r.Relation})
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return errors.Wrap(err, "failed to marshal nodes")
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return errors.Wrap(err, "failed to marshal links")
	}

	tmpl, err := template.New("graph").Parse(d3Template)
	if err != nil {
		return errors.Wrap(err, "failed to parse visualization template")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	return tmpl.Execute(f, pageData{
		Title: title,
		Nodes: template.JS(nodesJSON),
		Links: template.JS(linksJSON),
	})
}

const d3Template = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://d3js.org/d3.v7.min.js"></script>
  <style>
    body { font-family: sans-serif; margin: 0; }
    .link { stroke: #999; stroke-opacity: 0.6; }
    .node circle { stroke: #fff; stroke-width: 1.5px; }
    .node text { font-size: 10px; }
  </style>
</head>
<body>
<svg width="1200" height="800"></svg>
<script>
const nodes = {{.Nodes}};
const links = {{.Links}};

const svg = d3.select("svg");
const width = +svg.attr("width");
const height = +svg.attr("height");
const color = d3.scaleOrdinal(d3.schemeCategory10);

const simulation = d3.forceSimulation(nodes)
  .force("link", d3.forceLink(links).id(d => d.id).distance(80))
  .force("charge", d3.forceManyBody().strength(-200))
  .force("center", d3.forceCenter(width / 2, height / 2));

const link = svg.append("g")
  .selectAll("line")
  .data(links)
  .join("line")
  .attr("class", "link");

const node = svg.append("g")
  .selectAll("g")
  .data(nodes)
  .join("g")
  .attr("class", "node")
  .call(d3.drag()
    .on("start", (event, d) => {
      if (!event.active) simulation.alphaTarget(0.3).restart();
      d.fx = d.x; d.fy = d.y;
    })
    .on("drag", (event, d) => { d.fx = event.x; d.fy = event.y; })
    .on("end", (event, d) => {
      if (!event.active) simulation.alphaTarget(0);
      d.fx = null; d.fy = null;
    }));

node.append("circle")
  .attr("r", 8)
  .attr("fill", d => color(d.group));

node.append("text")
  .attr("dx", 12)
  .attr("dy", 4)
  .text(d => d.text);

node.append("title")
  .text(d => d.type + ": " + d.text);

simulation.on("tick", () => {
  link
    .attr("x1", d => d.source.x)
    .attr("y1", d => d.source.y)
    .attr("x2", d => d.target.x)
    .attr("y2", d => d.target.y);
  node.attr("transform", d => "translate(" + d.x + "," + d.y + ")");
});
</script>
</body>
</html>
`
