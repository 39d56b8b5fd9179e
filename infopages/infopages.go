package infopages

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"milonga/data"
	"milonga/db"
	"milonga/models"
	"milonga/mq"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var allowedSlugs = []string{"clases", "intensivos"}

var defaultTitles = map[string]string{
	"clases":     "Clases",
	"intensivos": "Intensivos",
}

func validSlug(slug string) bool {
	return slices.Contains(allowedSlugs, slug)
}

// GetInfoPage returns the page for a slug, lazily creating it from the seed
// content on first read.
func GetInfoPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")
	if !validSlug(slug) {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	var page models.InfoPage
	err := db.InfoPagesCollection.FindOne(r.Context(), bson.M{"slug": slug}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		seed, seedErr := data.InfoPageSeed(slug)
		if seedErr != nil {
			log.Errorf("Missing seed content for %s: %v", slug, seedErr)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load page")
			return
		}
		now := time.Now()
		page = models.InfoPage{
			Slug:      slug,
			Title:     defaultTitles[slug],
			Content:   Sanitize(seed),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.InfoPagesCollection.InsertOne(r.Context(), page); err != nil && !db.IsDuplicateKeyError(err) {
			log.Errorf("Failed to seed info page %s: %v", slug, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load page")
			return
		}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load page")
		return
	}

	utils.SendResponse(w, http.StatusOK, page, "OK", nil)
}

// UpdateInfoPage upserts a page's title and sanitized content.
func UpdateInfoPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")
	if !validSlug(slug) {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	title := input.Title
	if title == "" {
		title = defaultTitles[slug]
	}

	now := time.Now()
	update := bson.M{
		"title":      title,
		"content":    Sanitize(input.Content),
		"updated_at": now,
	}
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		update["updated_by"] = userID
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var page models.InfoPage
	err := db.InfoPagesCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"slug": slug},
		bson.M{
			"$set":         update,
			"$setOnInsert": bson.M{"created_at": now},
		},
		opts,
	).Decode(&page)
	if err != nil {
		log.Errorf("Failed to update info page %s: %v", slug, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update page")
		return
	}

	mq.Emit("infopage-updated", mq.Index{EntityType: "infopage", EntityId: slug, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, page, "Page updated successfully", nil)
}
