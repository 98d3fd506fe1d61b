package reflow

import (
	"encoding/json"
	"sort"

	"github.com/gridwerk/gridwerk/pkg/cache"
)

// signaturePayload is the canonical serialized form of a PlanInput:
// struct field order is fixed and the span and source maps flatten to
// key-sorted slices, so two logically equal inputs marshal to identical
// bytes no matter how their maps were populated.
type signaturePayload struct {
	GridCols int        `json:"gridCols"`
	GridRows int        `json:"gridRows"`
	Order    []string   `json:"order"`
	Spans    []keySpan  `json:"spans"`
	Sources  []keyPos   `json:"sources"`
	Geometry [6]float64 `json:"geometry"`
}

type keySpan struct {
	Key  string `json:"key"`
	Span int    `json:"span"`
}

type keyPos struct {
	Key string   `json:"key"`
	Pos Position `json:"pos"`
}

// PlanSignature derives a content identity for a plan input: a 64-char
// SHA-256 hex string that changes exactly when a semantically relevant
// field changes (grid size, block order, spans, source positions,
// vertical geometry) and never with incidental map ordering. It is the
// plan's cache key material.
func PlanSignature(in PlanInput) string {
	payload := signaturePayload{
		GridCols: in.GridCols,
		GridRows: in.GridRows,
		Order:    append([]string{}, in.Order...),
		Spans:    make([]keySpan, 0, len(in.Spans)),
		Sources:  make([]keyPos, 0, len(in.Sources)),
		Geometry: [6]float64{
			in.PageHeight, in.MarginTop, in.MarginBottom,
			in.GridUnit, in.ModuleHeight, in.GutterV,
		},
	}
	for key, span := range in.Spans {
		payload.Spans = append(payload.Spans, keySpan{Key: key, Span: span})
	}
	sort.Slice(payload.Spans, func(i, j int) bool {
		return payload.Spans[i].Key < payload.Spans[j].Key
	})
	for key, pos := range in.Sources {
		payload.Sources = append(payload.Sources, keyPos{Key: key, Pos: pos})
	}
	sort.Slice(payload.Sources, func(i, j int) bool {
		return payload.Sources[i].Key < payload.Sources[j].Key
	})

	data, _ := json.Marshal(payload)
	return cache.Hash(data)
}
