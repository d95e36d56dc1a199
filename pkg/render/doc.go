// Package render turns tool graphs into Graphviz diagrams.
//
// [ToDOT] produces DOT text from a [dag.Graph]; [RenderSVG] rasterizes
// it with the embedded Graphviz engine. PDF and PNG conversion shell
// out to rsvg-convert (librsvg), matching how workflow diagrams are
// exported for docs and dashboards.
package render
