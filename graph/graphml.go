package graph

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// gmlDocument mirrors the GraphML dialect: a root holding one or more
// <graph> elements, each with <node> and <edge> children. No third-party
// XML library appears anywhere in the retrieval pack for this spec's
// domain, and GraphML's struct-tag mapping onto encoding/xml is direct
// enough that introducing one would add nothing.
type gmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Graphs  []gmlGraph `xml:"graph"`
}

type gmlGraph struct {
	Nodes []gmlNode `xml:"node"`
	Edges []gmlEdge `xml:"edge"`
}

type gmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []gmlData `xml:"data"`
}

type gmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type gmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

func (n gmlNode) dataValue(key string) (string, bool) {
	for _, d := range n.Data {
		if d.Key == key {
			return d.Value, true
		}
	}
	return "", false
}

// ParseGraphML parses a GraphML document (UTF-8) into a CTFactorGraph.
// Node ids are assigned densely in document order; edges are resolved
// against the resulting name index. Taxon nodes default to belief (0, 0);
// FillPriors sets their real value afterward.
func ParseGraphML(data []byte) (*CTFactorGraph, error) {
	var doc gmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("graph: parse GraphML: %w", err)
	}

	g := NewCTFactorGraph()
	for _, gr := range doc.Graphs {
		for _, gn := range gr.Nodes {
			node, err := parseNode(gn)
			if err != nil {
				return nil, err
			}
			g.AddNode(node)
		}
	}

	for _, gr := range doc.Graphs {
		for _, ge := range gr.Edges {
			aID, ok := g.NameToID[ge.Source]
			if !ok {
				return nil, fmt.Errorf("graph: source %q: %w", ge.Source, ErrUnknownNodeID)
			}
			bID, ok := g.NameToID[ge.Target]
			if !ok {
				return nil, fmt.Errorf("graph: target %q: %w", ge.Target, ErrUnknownNodeID)
			}
			g.AddEdge(aID, bID, 2)
		}
	}

	return g, nil
}

// parseNode builds a Node from one <node> element per its d2 category.
func parseNode(gn gmlNode) (Node, error) {
	category, ok := gn.dataValue("d2")
	if !ok {
		return Node{}, fmt.Errorf("graph: node %q: d2: %w", gn.ID, ErrMissingNodeData)
	}

	switch category {
	case "peptide":
		d0, err := parseFloatData(gn, "d0")
		if err != nil {
			return Node{}, err
		}
		d1, err := parseFloatData(gn, "d1")
		if err != nil {
			return Node{}, err
		}
		return Node{Name: gn.ID, Kind: Peptide, Belief: [2]float64{d0, d1}}, nil

	case "taxon":
		return Node{Name: gn.ID, Kind: Taxon, Belief: [2]float64{0, 0}}, nil

	case "factor":
		d3, ok := gn.dataValue("d3")
		if !ok {
			return Node{}, fmt.Errorf("graph: node %q: d3: %w", gn.ID, ErrMissingNodeData)
		}
		n, err := strconv.Atoi(d3)
		if err != nil {
			return Node{}, fmt.Errorf("graph: node %q: parsing d3 %q: %w", gn.ID, d3, err)
		}
		return Node{Name: gn.ID, Kind: Factor, ParentCount: n}, nil

	default:
		return Node{}, fmt.Errorf("graph: node %q: category %q: %w", gn.ID, category, ErrUnknownNodeCategory)
	}
}

func parseFloatData(gn gmlNode, key string) (float64, error) {
	raw, ok := gn.dataValue(key)
	if !ok {
		return 0, fmt.Errorf("graph: node %q: %s: %w", gn.ID, key, ErrMissingNodeData)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("graph: node %q: parsing %s %q: %w", gn.ID, key, raw, err)
	}
	return v, nil
}
