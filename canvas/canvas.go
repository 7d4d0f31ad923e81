// Package canvas owns per-token state: the trait assigned at mint and the
// stored art. It is the entry point surrounding systems call.
//
// Mutations are serialized per Service, so each SetArt/AppendArt is atomic
// and isolated: every submitted object is stored or none is. Reads see the
// latest committed record.
package canvas

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/rs/zerolog"

	"xdao.co/paint/art"
	"xdao.co/paint/document"
	"xdao.co/paint/mint"
	"xdao.co/paint/observability"
	"xdao.co/paint/raster"
	"xdao.co/paint/storage"
)

const (
	opSet    = "set"
	opAppend = "append"
)

type Options struct {
	Collection document.Collection
	Wrapper    document.Wrapper
	Logger     zerolog.Logger
}

type Service struct {
	store      storage.Store
	traits     mint.TraitSource
	collection document.Collection
	wrapper    document.Wrapper
	log        zerolog.Logger

	mu sync.Mutex
}

func New(store storage.Store, traits mint.TraitSource, opts Options) (*Service, error) {
	if store == nil {
		return nil, errors.New("canvas: nil store")
	}
	if traits == nil {
		return nil, errors.New("canvas: nil trait source")
	}
	return &Service{
		store:      store,
		traits:     traits,
		collection: opts.Collection,
		wrapper:    opts.Wrapper,
		log:        opts.Logger.With().Str("component", "canvas").Logger(),
	}, nil
}

// Mint assigns a trait to a new token and starts it with empty art. Minting
// an existing token fails with storage.ErrExists.
func (s *Service) Mint(tokenID uint64) (art.Trait, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Has(tokenID) {
		return art.Trait{}, fmt.Errorf("canvas: mint token %d: %w", tokenID, storage.ErrExists)
	}
	t, err := s.traits.TraitFor(tokenID)
	if err != nil {
		return art.Trait{}, fmt.Errorf("canvas: trait for token %d: %w", tokenID, err)
	}
	if err := t.Validate(); err != nil {
		return art.Trait{}, fmt.Errorf("canvas: trait for token %d: %w", tokenID, err)
	}
	if _, err := s.store.Save(storage.Record{TokenID: tokenID, Trait: t}); err != nil {
		return art.Trait{}, fmt.Errorf("canvas: mint token %d: %w", tokenID, err)
	}
	s.log.Info().Uint64("token", tokenID).Str("shape0", t.Shape0.String()).Str("shape1", t.Shape1.String()).Int("polygon", t.Polygon).Msg("minted")
	return t, nil
}

// Commit describes the record a successful SetArt or AppendArt stored.
type Commit struct {
	CID     cid.Cid
	Objects int
}

// SetArt replaces the token's art with packed.
func (s *Service) SetArt(tokenID uint64, packed []art.Packed) (Commit, error) {
	return s.commit(opSet, tokenID, packed)
}

// AppendArt appends packed to the token's art.
func (s *Service) AppendArt(tokenID uint64, packed []art.Packed) (Commit, error) {
	return s.commit(opAppend, tokenID, packed)
}

func (s *Service) commit(op string, tokenID uint64, packed []art.Packed) (_ Commit, err error) {
	defer func() { observability.RecordSubmission(op, len(packed), err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Load(tokenID)
	if err != nil {
		return Commit{}, fmt.Errorf("canvas: token %d: %w", tokenID, err)
	}

	objs, err := art.AcceptAll(packed, rec.Trait)
	if err != nil {
		kind, rule := art.KindOf(err), art.RuleID(err)
		observability.RecordRejection(string(kind), rule)
		s.log.Warn().Uint64("token", tokenID).Str("op", op).Str("kind", string(kind)).Str("rule", rule).Err(err).Msg("art rejected")
		return Commit{}, err
	}
	// Store the canonical encoding; decode ignores bits outside the fields.
	canonical, err := art.EncodeAll(objs)
	if err != nil {
		return Commit{}, err
	}

	next := rec.Clone()
	if op == opAppend {
		next.Objects = append(next.Objects, canonical...)
	} else {
		next.Objects = canonical
	}
	id, err := s.store.Save(next)
	if err != nil {
		return Commit{}, fmt.Errorf("canvas: save token %d: %w", tokenID, err)
	}
	s.log.Info().Uint64("token", tokenID).Str("op", op).Int("submitted", len(packed)).Int("total", len(next.Objects)).Str("cid", id.String()).Msg("art stored")
	return Commit{CID: id, Objects: len(next.Objects)}, nil
}

// Trait returns the token's trait.
func (s *Service) Trait(tokenID uint64) (art.Trait, error) {
	rec, err := s.load(tokenID)
	if err != nil {
		return art.Trait{}, err
	}
	return rec.Trait, nil
}

// Objects returns the token's decoded art in stored order.
func (s *Service) Objects(tokenID uint64) ([]art.Object, error) {
	rec, err := s.load(tokenID)
	if err != nil {
		return nil, err
	}
	return stored(rec)
}

// Packed returns the token's stored art in wire form.
func (s *Service) Packed(tokenID uint64) ([]art.Packed, error) {
	rec, err := s.load(tokenID)
	if err != nil {
		return nil, err
	}
	return rec.Objects, nil
}

// TokenSVG renders the token's full SVG document.
func (s *Service) TokenSVG(tokenID uint64) ([]byte, error) {
	start := time.Now()
	rec, err := s.load(tokenID)
	if err != nil {
		return nil, err
	}
	objs, err := stored(rec)
	if err != nil {
		return nil, err
	}
	svg := s.wrapper.Assemble(rec.Trait, objs)
	observability.RecordRender("svg", time.Since(start))
	return svg, nil
}

// TokenDocument returns the token's SVG with its CID.
func (s *Service) TokenDocument(tokenID uint64) (document.Document, error) {
	svg, err := s.TokenSVG(tokenID)
	if err != nil {
		return document.Document{}, err
	}
	return document.New(svg)
}

// TokenMetadata returns the token's metadata JSON.
func (s *Service) TokenMetadata(tokenID uint64) ([]byte, error) {
	start := time.Now()
	rec, err := s.load(tokenID)
	if err != nil {
		return nil, err
	}
	objs, err := stored(rec)
	if err != nil {
		return nil, err
	}
	svg := s.wrapper.Assemble(rec.Trait, objs)
	b, err := document.AssembleMetadata(s.collection, tokenID, svg, rec.Trait)
	if err != nil {
		return nil, err
	}
	observability.RecordRender("metadata", time.Since(start))
	return b, nil
}

// TokenURI returns the metadata as a data:application/json;base64 URI.
func (s *Service) TokenURI(tokenID uint64) (string, error) {
	b, err := s.TokenMetadata(tokenID)
	if err != nil {
		return "", err
	}
	return document.TokenURI(b), nil
}

// TokenPNG rasterizes a preview of the token's art. The preview omits the
// template and trait legend. size 0 keeps the canvas size.
func (s *Service) TokenPNG(tokenID uint64, size int) ([]byte, error) {
	start := time.Now()
	objs, err := s.Objects(tokenID)
	if err != nil {
		return nil, err
	}
	b, err := raster.PNG(raster.Preview(objs), size)
	if err != nil {
		return nil, fmt.Errorf("canvas: token %d: %w", tokenID, err)
	}
	observability.RecordRender("png", time.Since(start))
	return b, nil
}

// stored decodes rec's art for rendering. The store may have been filled by
// another process, so objects are re-accepted against the trait.
func stored(rec storage.Record) ([]art.Object, error) {
	objs, err := art.AcceptAll(rec.Objects, rec.Trait)
	if err != nil {
		return nil, fmt.Errorf("canvas: token %d: stored art: %w: %w", rec.TokenID, storage.ErrMalformed, err)
	}
	return objs, nil
}

func (s *Service) load(tokenID uint64) (storage.Record, error) {
	rec, err := s.store.Load(tokenID)
	if err != nil {
		return storage.Record{}, fmt.Errorf("canvas: token %d: %w", tokenID, err)
	}
	return rec, nil
}
