package model

// PackedObject is the wire form of an object. Base is "0x" plus 64 hex digits;
// AdditionalPoints is plain hex and empty for objects with at most six points.
type PackedObject struct {
	Base             string `json:"base"`
	AdditionalPoints string `json:"additionalPoints"`
}

// Object is the decoded form. Points are [x, y] pairs.
type Object struct {
	Shape  string   `json:"shape"`
	Color  string   `json:"color"`
	Stroke int      `json:"stroke"`
	Points [][2]int `json:"points"`
}

type Trait struct {
	Colors  []string `json:"colors"`
	Shape0  string   `json:"shape0"`
	Shape1  string   `json:"shape1"`
	Polygon int      `json:"polygon"`
}

// ArtRequest is the body of setArt, appendArt, and lint calls.
type ArtRequest struct {
	Objects []PackedObject `json:"objects"`
}

type ArtResponse struct {
	Token   uint64 `json:"token"`
	CID     string `json:"cid"`
	Objects int    `json:"objects"`
}

type MintResponse struct {
	Token uint64 `json:"token"`
	Trait Trait  `json:"trait"`
}

type ObjectsResponse struct {
	Token   uint64   `json:"token"`
	Objects []Object `json:"objects"`
}

// Violation is one failed rule for one submitted object.
type Violation struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// LintResponse lists every violation in submission order, then rule order.
type LintResponse struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}
