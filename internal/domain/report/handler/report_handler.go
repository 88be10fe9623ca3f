package handler

import (
	"net/http"

	"course_market/internal/domain/report/repository"
	"course_market/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报表处理器（管理端）
type ReportHandler struct {
	repo repository.ReportRepository
}

func NewReportHandler(repo repository.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// SalesReport 销售报表
// @Summary 销售报表
// @Tags Admin
// @Produce json
// @Router /admin/reports/sales [get]
func (h *ReportHandler) SalesReport(c *gin.Context) {
	sales, err := h.repo.SalesByCategory()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	orders, err := h.repo.OrdersByStatus()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{
		"salesByCategory": sales,
		"ordersByStatus":  orders,
	})
}
