package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/export"
	"github.com/atsdairy/dashboard/internal/store"
)

// Resource adapts one screen's record store to HTTP. Every screen gets the
// same surface: list, add, begin-edit, save-edit, cancel-edit, delete, stats
// and export, differing only in record type, validators and columns.
type Resource[T any] struct {
	name     string
	store    *store.Store[T]
	header   []string
	row      func(T) []string
	stats    func([]T) any
	exporter *export.Service
	logger   *zap.Logger
}

// NewResource constructs the handler set for one screen. stats may be nil
// for screens without a summary strip.
func NewResource[T any](name string, s *store.Store[T], header []string, row func(T) []string, stats func([]T) any, exporter *export.Service, logger *zap.Logger) *Resource[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[T]{
		name:     name,
		store:    s,
		header:   header,
		row:      row,
		stats:    stats,
		exporter: exporter,
		logger:   logger,
	}
}

// Register mounts the resource routes under rg.
func (r *Resource[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", r.List)
	rg.POST("", r.Add)
	rg.GET("/:index", r.Get)
	rg.POST("/:index/edit", r.BeginEdit)
	rg.PUT("/:index", r.SaveEdit)
	rg.POST("/edit/cancel", r.CancelEdit)
	rg.DELETE("/:index", r.Delete)
	rg.GET("/stats", r.Stats)
	rg.GET("/export", r.ExportCSV)
	rg.POST("/export/sheets", r.ExportSheets)
}

// List returns the records in display order.
func (r *Resource[T]) List(c *gin.Context) {
	items := r.store.List()
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Get returns one record by its display index.
func (r *Resource[T]) Get(c *gin.Context) {
	index, ok := r.index(c)
	if !ok {
		return
	}
	record, err := r.store.Get(index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Add validates the submitted draft and appends it to the list.
func (r *Resource[T]) Add(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		r.logger.Warn("invalid payload", zap.String("screen", r.name), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, errs, err := r.store.Add(draft)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, added)
}

// BeginEdit copies the addressed record into the draft and returns it.
func (r *Resource[T]) BeginEdit(c *gin.Context) {
	index, ok := r.index(c)
	if !ok {
		return
	}
	draft, err := r.store.BeginEdit(index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "index": index})
}

// SaveEdit re-validates the draft and replaces the record in place.
func (r *Resource[T]) SaveEdit(c *gin.Context) {
	index, ok := r.index(c)
	if !ok {
		return
	}

	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		r.logger.Warn("invalid payload", zap.String("screen", r.name), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, errs, err := r.store.SaveEdit(index, draft)
	switch {
	case errors.Is(err, store.ErrOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, store.ErrInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
	default:
		c.JSON(http.StatusOK, saved)
	}
}

// CancelEdit discards the draft; calling it with no edit open is a no-op.
func (r *Resource[T]) CancelEdit(c *gin.Context) {
	r.store.CancelEdit()
	c.Status(http.StatusNoContent)
}

// Delete removes the addressed record.
func (r *Resource[T]) Delete(c *gin.Context) {
	index, ok := r.index(c)
	if !ok {
		return
	}
	removed, err := r.store.Delete(index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "count": r.store.Len()})
}

// Stats serves the screen's summary strip.
func (r *Resource[T]) Stats(c *gin.Context) {
	if r.stats == nil {
		c.JSON(http.StatusOK, gin.H{"count": r.store.Len()})
		return
	}
	c.JSON(http.StatusOK, r.stats(r.store.List()))
}

// ExportCSV serves the list as a CSV attachment in declared column order.
func (r *Resource[T]) ExportCSV(c *gin.Context) {
	body := export.CSV(r.header, r.rows())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", r.name))
	c.Data(http.StatusOK, "text/csv", []byte(body))
}

// ExportSheets appends the list to the configured Google Sheets tab.
func (r *Resource[T]) ExportSheets(c *gin.Context) {
	if r.exporter == nil || !r.exporter.SheetsEnabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "sheets export is not configured"})
		return
	}
	if err := r.exporter.ToSheets(c.Request.Context(), r.name, r.header, r.rows()); err != nil {
		r.logger.Error("sheets export failed", zap.String("screen", r.name), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export to sheets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": r.store.Len()})
}

func (r *Resource[T]) rows() [][]string {
	items := r.store.List()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, r.row(item))
	}
	return rows
}

func (r *Resource[T]) index(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return 0, false
	}
	return index, true
}
