// Package api provides the REST API server for rhythm2midi
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/rhythm2midi/pkg/rhythm"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Rhythm2MIDI API
// @version 1.0
// @description API for converting naive-rhythm tap documents into MIDI files
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert", handleConvert)
		v1.GET("/info", formatInfo)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rhythm2midi",
	})
}

// formatInfo godoc
// @Summary Describe the accepted input format
// @Description Returns the tap document grammar and the fixed MIDI parameters
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/info [get]
func formatInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"magic":     rhythm.Magic,
		"grammar":   "naive-rhythm bpm <tempo> <ms> <ms> ...",
		"tempo_min": rhythm.MinTempo,
		"tempo_max": rhythm.MaxTempo,
		"midi": gin.H{
			"format":            1,
			"ticks_per_quarter": 480,
			"note":              60,
			"velocity":          127,
			"channel":           0,
		},
	})
}

// handleConvert godoc
// @Summary Convert a tap document to MIDI
// @Description Upload a naive-rhythm text document (multipart field "file" or raw body) and receive a MIDI file
// @Tags convert
// @Accept multipart/form-data
// @Accept text/plain
// @Produce audio/midi
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func handleConvert(c *gin.Context) {
	text, outputName, ok := readDocument(c)
	if !ok {
		return
	}

	result, err := rhythm.New().Convert(text)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, rhythm.ErrWrite) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.Data(http.StatusOK, "audio/midi", result)
}

// readDocument pulls the tap text from a multipart upload when one is
// present, falling back to the raw request body.
func readDocument(c *gin.Context) (text, outputName string, ok bool) {
	outputName = "rhythm.mid"

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return "", "", false
		}
		if len(header.Filename) > 4 {
			outputName = header.Filename[:len(header.Filename)-4] + ".mid"
		}
		return string(data), outputName, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No document uploaded"})
		return "", "", false
	}
	return string(data), outputName, true
}
