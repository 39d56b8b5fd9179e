package notices

import (
	"context"
	"net/http"
	"time"

	"milonga/db"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// Inactive notices whose end date is this far in the past get purged.
const retentionWindow = 30 * 24 * time.Hour

func cleanupExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-retentionWindow)
	res, err := db.NoticesCollection.DeleteMany(ctx, bson.M{
		"is_active": false,
		"end_date":  bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CleanupExpiredNotices runs the retention purge on demand. Admin only.
func CleanupExpiredNotices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deleted, err := cleanupExpired(r.Context())
	if err != nil {
		log.Errorf("Notice cleanup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Cleanup failed")
		return
	}
	utils.SendResponse(w, http.StatusOK, map[string]int64{"deleted": deleted}, "Cleanup complete", nil)
}

// StartRetentionWorker purges eligible notices once a day until ctx ends.
func StartRetentionWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := cleanupExpired(ctx)
				if err != nil {
					log.Errorf("Notice retention pass failed: %v", err)
					continue
				}
				if deleted > 0 {
					log.Infof("Notice retention pass removed %d notices", deleted)
				}
			}
		}
	}()
}
