// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package httpapi

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalzilio-labs/qmddsift/internal/qmddsvc"
)

// jobResponse is the JSON shape returned for a job, whether freshly created
// or fetched by id.
type jobResponse struct {
	ID         string `json:"id"`
	Scheme     string `json:"scheme"`
	SizeBefore int    `json:"size_before"`
	SizeAfter  int    `json:"size_after"`
	Order      string `json:"order"`
	Error      string `json:"error,omitempty"`
}

// createJob accepts a circuit description in the request body (the same
// text format circuit.Parse reads from a file) and runs it to completion
// synchronously, returning the finished job.
func (s *Server) createJob(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := s.svc.Submit(c.Request.Context(), bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(job))
}

func (s *Server) getJob(c *gin.Context) {
	job, ok := s.svc.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, toResponse(job))
}

func (s *Server) getJobDot(c *gin.Context) {
	job, ok := s.svc.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	var buf bytes.Buffer
	if err := job.Dot(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz", buf.Bytes())
}

func toResponse(job *qmddsvc.Job) jobResponse {
	resp := jobResponse{
		ID:         job.ID,
		Scheme:     job.Scheme.String(),
		SizeBefore: job.SizeBefore(),
		SizeAfter:  job.SizeAfter(),
		Order:      job.PrintOrder(),
	}
	if err := job.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}
