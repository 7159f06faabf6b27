package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"scenespeak/internal/scan"
	"scenespeak/internal/tts"
	"scenespeak/internal/utils"
	"scenespeak/internal/vision"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 * 1024 * 1024

var (
	scanner     *scan.Scanner
	scannerOnce sync.Once
	scannerErr  error
)

// InitScanner injects a pre-built scanner (used by tests and by callers
// that construct providers themselves)
func InitScanner(s *scan.Scanner) {
	scanner = s
}

// getScanner returns the scanner, building providers from the
// environment on first use
func getScanner() (*scan.Scanner, error) {
	if scanner != nil {
		return scanner, nil
	}

	scannerOnce.Do(func() {
		visionProvider, err := vision.CreateProvider()
		if err != nil {
			scannerErr = err
			log.Printf("Failed to create vision provider: %v", err)
			return
		}

		ttsProvider, err := tts.CreateProvider()
		if err != nil {
			scannerErr = err
			log.Printf("Failed to create TTS provider: %v", err)
			return
		}

		scanner = scan.NewScanner(visionProvider, ttsProvider)
		log.Printf("Scanner initialized: vision=%s, tts=%s", visionProvider.Name(), ttsProvider.Name())
	})

	return scanner, scannerErr
}

func RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/scan", doScan)
		v1.GET("/history", getHistory)
		v1.DELETE("/history", clearHistory)
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "scenespeak-backend",
	})
}

// scanJSONRequest is the JSON body variant of a scan request, used when
// the browser sends a canvas capture as a data URI
type scanJSONRequest struct {
	ImageDataURI string   `json:"image_data_uri" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Voice        string   `json:"voice"`
}

// doScan handles one capture -> describe -> speak cycle
func doScan(c *gin.Context) {
	req, err := parseScanRequest(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	s, err := getScanner()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "scan providers not available: "+err.Error())
		return
	}

	result, err := s.Scan(c.Request.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrInvalidVoice):
			utils.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, scan.ErrDescriptionUnavailable):
			utils.Error(c, http.StatusBadGateway, "could not describe the scene, please try again")
		default:
			log.Printf("[Scan API] Unexpected scan error: %v", err)
			utils.Error(c, http.StatusInternalServerError, "scan failed")
		}
		return
	}

	// History append is fire-and-forget: it never delays or fails the
	// response, and anonymous scans skip it entirely.
	if userID, ok := currentUserID(c); ok {
		appendHistory(userID, req, result)
	} else {
		log.Printf("[Scan API] No user identity, skipping history append")
	}

	data := gin.H{
		"description":            result.Description,
		"tts_audio_data_uri":     result.AudioDataURI,
		"audio_duration_seconds": result.AudioDurationSeconds,
	}
	if result.LocationLabel != "" {
		data["location_label"] = result.LocationLabel
	}

	utils.Success(c, data)
}

// parseScanRequest accepts either a multipart upload or a JSON body with
// a data URI image
func parseScanRequest(c *gin.Context) (*scan.Request, error) {
	contentType := c.GetHeader("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return parseMultipartScan(c)
	}

	var body scanJSONRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, fmt.Errorf("image_data_uri is required: %v", err)
	}

	data, mimeType, err := parseDataURI(body.ImageDataURI)
	if err != nil {
		return nil, err
	}
	if err := validateImage(data, mimeType); err != nil {
		return nil, err
	}

	req := &scan.Request{
		Image: vision.Image{Data: data, MIMEType: mimeType},
		Voice: scan.Voice(body.Voice),
	}
	if body.Latitude != nil && body.Longitude != nil {
		req.Coords = &vision.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude}
	}

	return req, nil
}

func parseMultipartScan(c *gin.Context) (*scan.Request, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// Try alternative field names
		if file, err = c.FormFile("photo"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				return nil, fmt.Errorf("image file is required")
			}
		}
	}

	if file.Size > maxImageBytes {
		return nil, fmt.Errorf("image size exceeds 10MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %v", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded image: %v", err)
	}

	mimeType := http.DetectContentType(data)
	if err := validateImage(data, mimeType); err != nil {
		return nil, err
	}

	req := &scan.Request{
		Image: vision.Image{Data: data, MIMEType: mimeType},
		Voice: scan.Voice(c.PostForm("voice")),
	}

	latStr := c.PostForm("latitude")
	lngStr := c.PostForm("longitude")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return nil, fmt.Errorf("invalid latitude/longitude values")
		}
		req.Coords = &vision.Coordinates{Latitude: lat, Longitude: lng}
	}

	return req, nil
}

// parseDataURI splits a data:<mime>;base64,<payload> string
func parseDataURI(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", fmt.Errorf("image_data_uri must be a data URI")
	}

	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("image_data_uri must be base64 encoded")
	}

	mimeType := rest[:sep]
	payload := rest[sep+len(";base64,"):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image payload: %v", err)
	}

	return data, mimeType, nil
}

func validateImage(data []byte, mimeType string) error {
	if len(data) == 0 {
		return fmt.Errorf("image is empty")
	}
	if len(data) > maxImageBytes {
		return fmt.Errorf("image size exceeds 10MB limit")
	}

	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
		return nil
	}
	return fmt.Errorf("unsupported image format %q. Supported: jpeg, png, webp", mimeType)
}
