package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/product-service/internal/adapters/http/handlers"
	"github.com/rafaelleal24/product-service/internal/core/service"
)

type ImportController struct {
	importService *service.ImportService
}

type UploadURLResponse struct {
	URL string `json:"url"`
}

func NewImportController(importService *service.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// CreateUploadURL godoc
// @Summary     Get a signed upload URL
// @Description Returns a short-lived URL for uploading a products CSV file
// @Tags        import
// @Produce     json
// @Param       name query    string true "File name"
// @Success     200  {object} UploadURLResponse
// @Failure     400  {object} handlers.ErrorResponse
// @Failure     429  {object} handlers.ErrorResponse
// @Failure     500  {object} handlers.ErrorResponse
// @Router      /api/v1/import [get]
func (ic *ImportController) CreateUploadURL(c *gin.Context) {
	url, err := ic.importService.CreateUploadURL(c.Request.Context(), c.Query("name"))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, UploadURLResponse{URL: url})
}
