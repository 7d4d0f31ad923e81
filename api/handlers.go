package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"xdao.co/paint/art"
	"xdao.co/paint/model"
	"xdao.co/paint/raster"
)

var codeStatus = map[model.ErrorCode]int{
	model.ErrInvalidRequest: http.StatusBadRequest,
	model.ErrNotFound:       http.StatusNotFound,
	model.ErrAlreadyMinted:  http.StatusConflict,
	model.ErrRange:          http.StatusUnprocessableEntity,
	model.ErrInvalidShape:   http.StatusUnprocessableEntity,
	model.ErrInvalidStroke:  http.StatusUnprocessableEntity,
	model.ErrInvalidPoints:  http.StatusUnprocessableEntity,
	model.ErrInvalidColor:   http.StatusUnprocessableEntity,
	model.ErrCIDMismatch:    http.StatusBadGateway,
	model.ErrInternal:       http.StatusInternalServerError,
}

func (s *Server) fail(c *gin.Context, err error) {
	ce := model.FromError(err)
	status, ok := codeStatus[ce.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ce)
}

func tokenID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, model.NewError(model.ErrInvalidRequest, "token id must be an unsigned decimal integer")
	}
	return id, nil
}

func (s *Server) mint(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	t, err := s.svc.Mint(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.MintResponse{Token: id, Trait: model.FromTrait(t)})
}

func (s *Server) trait(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	t, err := s.svc.Trait(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MintResponse{Token: id, Trait: model.FromTrait(t)})
}

func (s *Server) setArt(c *gin.Context)    { s.submit(c, false) }
func (s *Server) appendArt(c *gin.Context) { s.submit(c, true) }

func (s *Server) submit(c *gin.Context, appendArt bool) {
	id, packed, err := artRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	commit := s.svc.SetArt
	if appendArt {
		commit = s.svc.AppendArt
	}
	res, err := commit(id, packed)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ArtResponse{Token: id, CID: res.CID.String(), Objects: res.Objects})
}

func artRequest(c *gin.Context) (uint64, []art.Packed, error) {
	id, err := tokenID(c)
	if err != nil {
		return 0, nil, err
	}
	var req model.ArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return 0, nil, model.NewError(model.ErrInvalidRequest, err.Error())
	}
	packed, err := req.Packed()
	if err != nil {
		return 0, nil, err
	}
	return id, packed, nil
}

// art returns decoded objects, or the stored wire form with ?form=packed.
func (s *Server) art(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("form") == "packed" {
		ps, err := s.svc.Packed(id)
		if err != nil {
			s.fail(c, err)
			return
		}
		req := model.ArtRequest{Objects: make([]model.PackedObject, 0, len(ps))}
		for _, p := range ps {
			req.Objects = append(req.Objects, model.FromPacked(p))
		}
		c.JSON(http.StatusOK, req)
		return
	}
	objs, err := s.svc.Objects(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ObjectsResponse{Token: id, Objects: model.FromObjects(objs)})
}

func (s *Server) lint(c *gin.Context) {
	id, packed, err := artRequest(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	t, err := s.svc.Trait(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Lint(packed, t))
}

func (s *Server) svg(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	doc, err := s.svc.TokenDocument(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("ETag", `"`+doc.CID.String()+`"`)
	c.Data(http.StatusOK, "image/svg+xml", doc.SVG)
}

func (s *Server) metadata(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	b, err := s.svc.TokenMetadata(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}

func (s *Server) uri(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	u, err := s.svc.TokenURI(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": id, "uri": u})
}

func (s *Server) png(c *gin.Context) {
	id, err := tokenID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	size := s.pngSize
	if q := c.Query("size"); q != "" {
		if size, err = strconv.Atoi(q); err != nil || size <= 0 || size > raster.MaxSize {
			s.fail(c, model.NewError(model.ErrInvalidRequest, "size must be in 1.."+strconv.Itoa(raster.MaxSize)))
			return
		}
	}
	b, err := s.svc.TokenPNG(id, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
