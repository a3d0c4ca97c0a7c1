package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shenzhen-arrom/kitties/kitty"
)

func RespondErrorResp(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"module": logModule,
		"url":    c.Request.URL,
		"err":    err,
	}).Error("request fail")
	c.AbortWithStatusJSON(http.StatusOK, formatErrResp(err))
}

func RespondSuccessResp(c *gin.Context, data interface{}) {
	c.AbortWithStatusJSON(http.StatusOK, Response{Code: codeSuccess, Result: data})
}

// All write requests carry the acting account. Transaction signatures
// are the host's concern; whatever fronts this API is expected to have
// authenticated the account already.

type createReq struct {
	Account string `json:"account" binding:"required"`
}

func (s *Server) Create(c *gin.Context) {
	req := &createReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		RespondErrorResp(c, err)
		return
	}

	id, err := s.registry.Create(req.Account)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"kitty_id": id})
}

type transferReq struct {
	Account  string `json:"account" binding:"required"`
	NewOwner string `json:"new_owner" binding:"required"`
	KittyID  uint64 `json:"kitty_id"`
}

func (s *Server) Transfer(c *gin.Context) {
	req := &transferReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		RespondErrorResp(c, err)
		return
	}

	if err := s.registry.Transfer(req.Account, req.NewOwner, kitty.ID(req.KittyID)); err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, nil)
}

type breedReq struct {
	Account string `json:"account" binding:"required"`
	Parent1 uint64 `json:"parent_1"`
	Parent2 uint64 `json:"parent_2"`
}

func (s *Server) Breed(c *gin.Context) {
	req := &breedReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		RespondErrorResp(c, err)
		return
	}

	id, err := s.registry.Breed(req.Account, kitty.ID(req.Parent1), kitty.ID(req.Parent2))
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"kitty_id": id})
}

type sellReq struct {
	Account string  `json:"account" binding:"required"`
	KittyID uint64  `json:"kitty_id"`
	Price   *uint64 `json:"price"` // absent price clears the listing
}

func (s *Server) Sell(c *gin.Context) {
	req := &sellReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		RespondErrorResp(c, err)
		return
	}

	if err := s.registry.Sell(req.Account, kitty.ID(req.KittyID), req.Price); err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, nil)
}

type buyReq struct {
	Account string `json:"account" binding:"required"`
	KittyID uint64 `json:"kitty_id"`
}

func (s *Server) Buy(c *gin.Context) {
	req := &buyReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		RespondErrorResp(c, err)
		return
	}

	if err := s.registry.Buy(req.Account, kitty.ID(req.KittyID)); err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, nil)
}

func (s *Server) Count(c *gin.Context) {
	count, err := s.registry.Count()
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"count": count})
}

func kittyIDParam(c *gin.Context) (kitty.ID, error) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return kitty.ID(raw), err
}

func (s *Server) GetKitty(c *gin.Context) {
	id, err := kittyIDParam(c)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}

	k, err := s.registry.Get(id)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"kitty_id": id, "genome": k.Genome.String()})
}

func (s *Server) GetOwner(c *gin.Context) {
	id, err := kittyIDParam(c)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}

	owner, err := s.registry.OwnerOf(id)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"kitty_id": id, "owner": owner})
}

func (s *Server) GetListing(c *gin.Context) {
	id, err := kittyIDParam(c)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}

	price, err := s.registry.ListingOf(id)
	if err != nil {
		RespondErrorResp(c, err)
		return
	}
	RespondSuccessResp(c, gin.H{"kitty_id": id, "for_sale": price != nil, "price": price})
}
