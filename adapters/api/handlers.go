package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	apperrors "chartadvisor/internal/errors"
	"chartadvisor/internal/mapping"
	"chartadvisor/internal/option"
	"chartadvisor/internal/profile"
	"chartadvisor/internal/report"
)

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("rows are required"))
		return
	}

	tbl := req.table()
	fields, err := s.extractor.Profile(c.Request.Context(), tbl)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		TotalRows:    len(tbl.Rows),
		Fields:       fields,
		Correlations: profile.Correlations(tbl, fields),
	})
}

func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("invalid recommend request"))
		return
	}

	fields := req.Fields
	totalRows := req.TotalRows
	if len(fields) == 0 {
		if len(req.Rows) == 0 {
			respondError(c, apperrors.InvalidInput("either fields or rows are required"))
			return
		}
		tbl := tableFrom(req.Columns, req.Rows)
		profiled, err := s.extractor.Profile(c.Request.Context(), tbl)
		if err != nil {
			respondError(c, err)
			return
		}
		fields = profiled
		totalRows = len(tbl.Rows)
	}

	c.JSON(http.StatusOK, recommendResponse{
		Recommendations: s.engine.Recommend(fields, totalRows, req.MaxResults),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("chart type and rows are required"))
		return
	}

	tbl := tableFrom(req.Columns, req.Rows)
	fields, err := s.extractor.Profile(c.Request.Context(), tbl)
	if err != nil {
		respondError(c, err)
		return
	}

	serialized, err := option.Serialize(req.ChartType, req.Title, req.Mapping, fields, tbl)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{Option: serialized})
}

func (s *Server) handleReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("rows are required"))
		return
	}

	tbl := tableFrom(req.Columns, req.Rows)
	fields, err := s.extractor.Profile(c.Request.Context(), tbl)
	if err != nil {
		respondError(c, err)
		return
	}

	html := report.HTML(report.Input{
		Title:           req.Title,
		TotalRows:       len(tbl.Rows),
		Fields:          fields,
		Recommendations: s.engine.Recommend(fields, len(tbl.Rows), 0),
		Correlations:    profile.Correlations(tbl, fields),
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleComposeMapping(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("chart type is required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mapping": mapping.Compose(req.ChartType, req.Fields, req.Previous),
	})
}

func (s *Server) handleRoleChange(c *gin.Context) {
	var req roleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("fields and role are required"))
		return
	}

	updated, err := mapping.ApplyRoleChange(req.Mapping, req.Fields, req.Role, req.Field)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mapping": updated})
}

func (s *Server) handleListCharts(c *gin.Context) {
	if sourceID := c.Query("data_source_id"); sourceID != "" {
		charts := s.charts.GetByDataSource(c.Request.Context(), core.DataSourceID(sourceID))
		c.JSON(http.StatusOK, gin.H{"charts": charts, "count": len(charts)})
		return
	}
	charts := s.charts.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"charts": charts, "count": len(charts)})
}

func (s *Server) handleAddChart(c *gin.Context) {
	var stored chart.StoredChart
	if err := c.ShouldBindJSON(&stored); err != nil {
		respondError(c, apperrors.InvalidInput("invalid chart payload"))
		return
	}
	if !s.charts.Add(c.Request.Context(), &stored) {
		respondError(c, apperrors.StorageError("chart could not be stored", nil))
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) handleGetChart(c *gin.Context) {
	id, err := core.ParseChartID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	stored, ok := s.charts.GetByID(c.Request.Context(), id)
	if !ok {
		respondError(c, core.NewNotFoundError("chart", id.String()))
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *Server) handleUpdateChart(c *gin.Context) {
	id, err := core.ParseChartID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	var patch chart.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperrors.InvalidInput("invalid chart patch"))
		return
	}
	if !s.charts.Update(c.Request.Context(), id, patch) {
		respondError(c, core.NewNotFoundError("chart", id.String()))
		return
	}
	stored, _ := s.charts.GetByID(c.Request.Context(), id)
	c.JSON(http.StatusOK, stored)
}

func (s *Server) handleRemoveChart(c *gin.Context) {
	id, err := core.ParseChartID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if !s.charts.Remove(c.Request.Context(), id) {
		respondError(c, core.NewNotFoundError("chart", id.String()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": id.String()})
}

func (s *Server) handleClearCharts(c *gin.Context) {
	if !s.charts.Clear(c.Request.Context()) {
		respondError(c, apperrors.StorageError("chart store could not be cleared", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
