// Package document assembles a token's full SVG document and its metadata
// payload from wrapper bytes, the trait, and the stored objects.
package document

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/ipfs/go-cid"

	"xdao.co/paint/art"
	"xdao.co/paint/cidutil"
	"xdao.co/paint/render"
)

// SVGDataPrefix prefixes the base64 SVG carried in metadata image_data.
const SVGDataPrefix = "data:image/svg+xml;base64,"

// JSONDataPrefix prefixes a base64 metadata payload served as a token URI.
const JSONDataPrefix = "data:application/json;base64,"

// Wrapper is the static SVG surrounding the dynamic content. Both parts are
// opaque bytes.
type Wrapper struct {
	Start []byte
	End   []byte
}

// AssembleSVG returns start || trait fragment || object fragments || end.
func AssembleSVG(start []byte, t art.Trait, objs []art.Object, end []byte) []byte {
	traitSVG := render.Trait(t)
	objSVG := render.Objects(objs)
	out := make([]byte, 0, len(start)+len(traitSVG)+len(objSVG)+len(end))
	out = append(out, start...)
	out = append(out, traitSVG...)
	out = append(out, objSVG...)
	out = append(out, end...)
	return out
}

// Assemble is AssembleSVG using w's parts.
func (w Wrapper) Assemble(t art.Trait, objs []art.Object) []byte {
	return AssembleSVG(w.Start, t, objs, w.End)
}

// Document is an assembled SVG with its content identifier.
type Document struct {
	SVG []byte
	CID cid.Cid
}

// New wraps svg and derives its CID.
func New(svg []byte) (Document, error) {
	id, err := cidutil.Sum(svg)
	if err != nil {
		return Document{}, err
	}
	return Document{SVG: svg, CID: id}, nil
}

// DataURI returns the SVG as a base64 data URI.
func (d Document) DataURI() string {
	return SVGDataURI(d.SVG)
}

// SVGDataURI encodes svg as data:image/svg+xml;base64,....
func SVGDataURI(svg []byte) string {
	return SVGDataPrefix + base64.StdEncoding.EncodeToString(svg)
}

// Collection is the static per-deployment metadata.
type Collection struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	// ExternalURL is suffixed with "#<tokenId>".
	ExternalURL string `toml:"external_url" json:"external_url"`
}

// Metadata is the token metadata document. Field order is the wire key order.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ExternalURL string      `json:"external_url"`
	ImageData   string      `json:"image_data"`
	Attributes  []Attribute `json:"attributes"`
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Attributes lists the trait attributes in wire order: Color1..Color5,
// Shape1, Shape2, Shape3.
func Attributes(t art.Trait) []Attribute {
	out := make([]Attribute, 0, art.NumTraitColors+3)
	for i, c := range t.Colors {
		out = append(out, Attribute{TraitType: "Color" + strconv.Itoa(i+1), Value: c.String()})
	}
	out = append(out,
		Attribute{TraitType: "Shape1", Value: t.Shape0.String()},
		Attribute{TraitType: "Shape2", Value: t.Shape1.String()},
		Attribute{TraitType: "Shape3", Value: art.PolygonName(t.Polygon)},
	)
	return out
}

// BuildMetadata fills the metadata document for a token.
func BuildMetadata(c Collection, tokenID uint64, svg []byte, t art.Trait) Metadata {
	id := strconv.FormatUint(tokenID, 10)
	return Metadata{
		Name:        c.Name + " #" + id,
		Description: c.Description,
		ExternalURL: c.ExternalURL + "#" + id,
		ImageData:   SVGDataURI(svg),
		Attributes:  Attributes(t),
	}
}

// AssembleMetadata returns the compact metadata JSON for a token. HTML
// characters in the collection strings are not escaped.
func AssembleMetadata(c Collection, tokenID uint64, svg []byte, t art.Trait) ([]byte, error) {
	return MarshalMetadata(BuildMetadata(c, tokenID, svg, t))
}

// MarshalMetadata encodes m compactly without HTML escaping.
func MarshalMetadata(m Metadata) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// TokenURI encodes metadata JSON as a data URI.
func TokenURI(metadata []byte) string {
	return JSONDataPrefix + base64.StdEncoding.EncodeToString(metadata)
}
