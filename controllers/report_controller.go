package controllers

import (
	"net/http"
	"time"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{Service: service}
}

type runAuditPayload struct {
	BusinessDate string `json:"businessDate"`
}

// RunNightAudit triggers the rollup on demand. Defaults to yesterday so the
// front desk can re-run the overnight job after fixing postings.
func (rc *ReportController) RunNightAudit(c *gin.Context) {
	var payload runAuditPayload
	_ = c.ShouldBindJSON(&payload)

	businessDate := time.Now().UTC().AddDate(0, 0, -1)
	if payload.BusinessDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.BusinessDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid_business_date")
			return
		}
		businessDate = parsed
	}

	report, err := rc.Service.RunNightAudit(c.Request.Context(), currentPropertyID(c), businessDate)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

func (rc *ReportController) LatestReport(c *gin.Context) {
	report, err := rc.Service.LatestReport(c.Request.Context(), currentPropertyID(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	if report == nil {
		utils.JSONError(c, http.StatusNotFound, "no_report_yet")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
