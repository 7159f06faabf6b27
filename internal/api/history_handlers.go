package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"scenespeak/internal/history"
	"scenespeak/internal/model"
	"scenespeak/internal/scan"
	"scenespeak/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// historyStore is the shared history store instance
var historyStore history.Store

// InitHistoryStore initializes the history store
func InitHistoryStore(store history.Store) {
	historyStore = store
	if store != nil {
		log.Printf("History store initialized successfully")
	} else {
		log.Printf("Warning: History store is nil")
	}
}

// currentUserID extracts the authenticated user's ID. Identity is an
// opaque precondition here: it arrives as an upstream-verified header,
// and its absence just means an anonymous scan.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr := c.GetHeader("X-User-ID")
	if userIDStr == "" {
		userIDStr = c.Query("user_id")
	}
	if userIDStr == "" {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// appendHistory writes the scan to the user's history without blocking
// the response. Failures are logged only.
func appendHistory(userID uuid.UUID, req *scan.Request, result *scan.Result) {
	if historyStore == nil {
		log.Printf("[History] Store not configured, skipping append for user %s", userID)
		return
	}

	entry := &model.HistoryEntry{
		ImageURL:      imageDataURI(req),
		Description:   result.Description,
		LocationLabel: result.LocationLabel,
	}

	go func() {
		// The request context ends with the response; the append outlives it
		id, err := historyStore.Append(context.Background(), userID, entry)
		if err != nil {
			log.Printf("[History] Append failed for user %s: %v", userID, err)
			return
		}
		log.Printf("[History] Appended entry %s for user %s", id, userID)
	}()
}

func imageDataURI(req *scan.Request) string {
	return fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data))
}

// getHistory handles GET /api/v1/history
func getHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusBadRequest, "user_id is required (X-User-ID header or user_id query parameter)")
		return
	}

	if historyStore == nil {
		utils.Error(c, http.StatusServiceUnavailable, "history is not available")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	entries, err := historyStore.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("[History] List failed for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		item := gin.H{
			"id":          entry.ID.String(),
			"image_url":   entry.ImageURL,
			"description": entry.Description,
			"created_at":  entry.CreatedAt,
		}
		if entry.LocationLabel != "" {
			item["location_label"] = entry.LocationLabel
		}
		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"history": items,
		"count":   len(items),
	})
}

// clearHistory handles DELETE /api/v1/history
func clearHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusBadRequest, "user_id is required (X-User-ID header or user_id query parameter)")
		return
	}

	if historyStore == nil {
		utils.Error(c, http.StatusServiceUnavailable, "history is not available")
		return
	}

	if err := historyStore.Clear(c.Request.Context(), userID); err != nil {
		log.Printf("[History] Clear failed for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to clear history")
		return
	}

	log.Printf("[History] Cleared history for user %s", userID)
	utils.Success(c, gin.H{
		"cleared": true,
	})
}
