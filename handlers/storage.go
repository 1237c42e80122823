package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"freelancehub/services/errs"
	"freelancehub/services/storage"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImageSize bounds a single upload.
const maxImageSize = 5 << 20

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// StorageHandler accepts image uploads for profiles and portfolios.
type StorageHandler struct {
	Storage storage.StorageService // Nil when uploads are not configured.
	Folder  string
}

func NewStorageHandler(svc storage.StorageService, folder string) *StorageHandler {
	return &StorageHandler{Storage: svc, Folder: folder}
}

// UploadImageHandler takes multipart field "image" and returns its URL.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, errs.Validation("UploadImage", "image file not provided"))
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExt[ext] {
		utils.RespondError(c, errs.Validation("UploadImage", "unsupported image type %q", ext))
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.RespondError(c, errs.Validation("UploadImage", "image exceeds %d MB", maxImageSize>>20))
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		utils.RespondError(c, errs.Upstream("UploadImage", err))
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		utils.RespondError(c, errs.Upstream("UploadImage", err))
		return
	}

	asset, err := h.Storage.UploadImage(c.Request.Context(), tmpPath, h.Folder+"/"+string(id.Role)+"s/"+id.ID)
	if err != nil {
		utils.RespondError(c, errs.Upstream("UploadImage", err))
		return
	}
	getLogger(c).Info("Image uploaded", zap.String("accountId", id.ID), zap.String("publicId", asset.PublicID))
	c.JSON(http.StatusOK, gin.H{"url": asset.URL, "publicId": asset.PublicID})
}
