package api

import (
	"ixbacktest/internal"
	"ixbacktest/internal/db/models/postgres/public/model"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) listInstruments(c *gin.Context) {
	metas, err := m.MetaRepository.List()
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if metas == nil {
		metas = []model.Meta{}
	}

	c.JSON(200, metas)
}

func (m ApiHandler) updatePrices(c *gin.Context) {
	err := internal.UpdatePrices(
		c.Request.Context(),
		m.Db,
		m.MetaRepository,
		m.PxDataRepository,
		m.PriceFetchers,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, map[string]string{
		"message": "ok",
	})
}
