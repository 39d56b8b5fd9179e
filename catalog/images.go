package catalog

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"milonga/db"
	"milonga/mq"
	"milonga/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const modulePicDir = "static/modulepic"

func processModuleImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GenerateID(16)
	originalPath := filepath.Join(modulePicDir, uniqueID+".jpg")
	thumbDir := filepath.Join(modulePicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, uniqueID+".jpg")

	if err := utils.EnsureDir(modulePicDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/modulepic/" + uniqueID + ".jpg", nil
}

// UploadModuleImage accepts a multipart image, stores it with a 300px
// thumbnail, and points the module's imagen field at it.
func UploadModuleImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	imagePath, err := processModuleImage(header)
	if err != nil {
		log.Errorf("Failed to process module image: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	res, err := db.ModulesCollection.UpdateOne(
		r.Context(),
		bson.M{"moduleid": id},
		bson.M{"$set": bson.M{"imagen": imagePath, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update module")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Module not found")
		return
	}

	mq.Emit("modulepic-uploaded", mq.Index{EntityType: "module", EntityId: id, Method: "POST"})

	utils.SendResponse(w, http.StatusOK, map[string]string{"imagen": imagePath}, "Image uploaded successfully", nil)
}
