package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/query"
	"backend/internal/repositories"
	"backend/internal/services"
)

// TableHandler mounts the table endpoints.
type TableHandler struct {
	Tables repositories.TableRepository
	Debug  bool
}

func (h TableHandler) service(c *gin.Context) services.TableService {
	return services.TableService{
		Tables:    h.Tables,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/tables
func (h TableHandler) List(c *gin.Context) {
	req := query.ParsePageRequest(c.Query("page"), c.Query("limit"))
	filter := query.BuildFilter(c.Request.URL.Query(), services.TableFilterFields...)

	result, err := h.service(c).List(c.Request.Context(), req, filter)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type createTableRequest struct {
	TableName string `json:"tablename"`
	Status    string `json:"status"`
}

// POST /api/tables
func (h TableHandler) Create(c *gin.Context) {
	var req createTableRequest
	if !BindJSONOrError(c, h.Debug, &req) {
		return
	}

	table, err := h.service(c).Create(c.Request.Context(), req.TableName, req.Status)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusCreated, "New Table Created Successfully", table)
}

// PATCH /api/tables/:id
func (h TableHandler) Update(c *gin.Context) {
	id, ok := tableIDParam(c, h.Debug)
	if !ok {
		return
	}

	var patch services.TablePatch
	if !BindJSONOrError(c, h.Debug, &patch) {
		return
	}

	table, err := h.service(c).Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusOK, "Table Updated Successfully", table)
}

// DELETE /api/tables/:id
func (h TableHandler) Delete(c *gin.Context) {
	id, ok := tableIDParam(c, h.Debug)
	if !ok {
		return
	}

	if err := h.service(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	RespondSuccess(c, http.StatusOK, "Table Deleted Successfully", nil)
}

// GET /api/tables/report
func (h TableHandler) Report(c *gin.Context) {
	svc := services.ReportService{
		Tables:    h.Tables,
		RequestID: middleware.GetRequestID(c),
	}

	pdfBytes, filename, err := svc.TablesStatusPDF(c.Request.Context())
	if err != nil {
		RespondDomainError(c, h.Debug, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func tableIDParam(c *gin.Context, debug bool) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, debug, domain.ValidationError{Field: "id", Msg: "Invalid table id"})
		return 0, false
	}
	return id, true
}
