package graph

import "fmt"

// NodeKind discriminates the two entity kinds in the projection
type NodeKind string

const (
	NodeKindProfile NodeKind = "profile"
	NodeKindNFT     NodeKind = "nft"
)

// LinkKind discriminates derived edge kinds
type LinkKind string

const (
	LinkKindOwnership       LinkKind = "ownership"
	LinkKindContractSibling LinkKind = "contract-sibling"
)

// Ref is a tagged entity reference: kind plus the entry index assigned by the
// identity index of that kind. It replaces numeric id-space partitioning; node
// IDs are derived from it and stay stable across recomputation.
type Ref struct {
	Kind  NodeKind `json:"kind"`
	Index int      `json:"index"`
}

// ID returns the stable node ID for the reference
func (r Ref) ID() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.Index)
}

// Node is one renderable graph node
type Node struct {
	ID           string   `json:"id"`
	Kind         NodeKind `json:"kind"`
	DisplayLabel string   `json:"display_label"`
	ImageURL     string   `json:"image_url,omitempty"`
	Ref          Ref      `json:"entity_ref"`
}

// Link is one renderable graph edge
type Link struct {
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
	Kind     LinkKind `json:"kind"`
}

// Projection is the renderable node/link set derived from session state
type Projection struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// linkSet unions link passes while dropping duplicate (source, target, kind)
// triples and links whose endpoints are not materialized as nodes.
type linkSet struct {
	seen  map[string]struct{}
	nodes map[string]struct{}
	links []Link
}

func newLinkSet(nodes []Node) *linkSet {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = struct{}{}
	}
	return &linkSet{
		seen:  make(map[string]struct{}),
		nodes: ids,
	}
}

func (s *linkSet) add(sourceID, targetID string, kind LinkKind) {
	if _, ok := s.nodes[sourceID]; !ok {
		return
	}
	if _, ok := s.nodes[targetID]; !ok {
		return
	}
	triple := sourceID + "|" + targetID + "|" + string(kind)
	if _, ok := s.seen[triple]; ok {
		return
	}
	s.seen[triple] = struct{}{}
	s.links = append(s.links, Link{SourceID: sourceID, TargetID: targetID, Kind: kind})
}
