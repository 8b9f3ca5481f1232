package scrap

import (
	"strconv"
	"time"

	"scraptrack-backend/internal/cache"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var statsCacheTTL = 60 * time.Second

// SetStatsCacheTTL applies the configured TTL (seconds) for the cached summary.
func SetStatsCacheTTL(seconds string) {
	if n, err := strconv.Atoi(seconds); err == nil && n > 0 {
		statsCacheTTL = time.Duration(n) * time.Second
	}
}

// GET /api/scrap-entries/stats
// The summary is recomputed from a fresh snapshot whenever the cache misses;
// every scrap mutation invalidates the cache, so "recomputed on change" holds.
func GetScrapStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := time.Now().Format("2006-01-02")
		key := statsCacheKey(today)

		var cached Stats
		if cache.GetJSON(c.Context(), key, &cached) {
			return c.JSON(cached)
		}

		var entries []models.ScrapEntry
		if err := database.DB.Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute scrap statistics")
		}

		stats := ComputeStats(entries, today)
		cache.SetJSON(c.Context(), key, stats, statsCacheTTL)

		return c.JSON(stats)
	}
}
