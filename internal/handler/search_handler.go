package handler

import (
	"net/http"
	"strings"

	"alumnihub/internal/service"
	"alumnihub/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service service.MemberSearchService
}

func NewSearchHandler(service service.MemberSearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Members(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	members, err := h.service.Search(query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": members})
}
