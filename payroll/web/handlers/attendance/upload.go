package attendance

import (
	"errors"
	"net/http"
	"strconv"

	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/repository"
	"timekeeper.com/timekeeper/utils"
	web "timekeeper.com/timekeeper/web/common"
	"timekeeper.com/timekeeper/web/handlers"
	"timekeeper.com/timekeeper/web/middlewares"

	"github.com/gin-gonic/gin"
)

func (ep *Endpoint) Upload(c *gin.Context) {
	fileHeader, err := handlers.UploadedFile(c, "payroll_file", UploadExtensions...)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	principal, _ := middlewares.GetPrincipal(c)
	meta := payroll.UploadMeta{
		UploadedBy: principal.Username,
		FileName:   fileHeader.Filename,
	}

	result, err := payroll.ProcessUpload(c.Request.Context(), ep.repo, meta, file, ep.options)
	if err != nil {
		if errors.Is(err, payroll.ErrEmptyUpload) || errors.Is(err, payroll.ErrNoAcceptedRows) {
			c.JSON(http.StatusBadRequest, web.NewErrorResponseWithDetails(err.Error(), toUploadResultDTO(result)))
			return
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(toUploadResultDTO(result)))
}

func (ep *Endpoint) ListUploads(c *gin.Context) {
	limit := repository.DefaultHistoryLimit
	if val, err := strconv.Atoi(c.Query("limit")); err == nil && val > 0 {
		limit = val
	}

	histories, err := ep.repo.ListHistory(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(utils.Map(histories, toHistoryDTO), int64(len(histories))))
}

func (ep *Endpoint) DeleteUpload(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	result, err := ep.repo.DeleteHistory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(DeleteResultDTO{
		History:        toHistoryDTO(result.History),
		DeletedPunches: result.DeletedPunches,
	}))
}
