package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
	"github.com/ignatzorin/resource-sharing-backend/internal/storage"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой файлов медиа для ресурсов.
type MediaHandler struct {
	resources *service.ResourceService
	storage   *storage.MediaStorage
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(resources *service.ResourceService, storage *storage.MediaStorage) *MediaHandler {
	return &MediaHandler{resources: resources, storage: storage}
}

// Upload обрабатывает POST /resources/:id/media/upload: сохраняет файл в
// хранилище и прикрепляет его к ресурсу.
func (h *MediaHandler) Upload(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	resourceID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c,
			fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(listAllowedExtensions(), ", ")))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondInternalError(c, err.Error())
		return
	}
	defer src.Close()

	// Проверяем магические байты: расширению доверять нельзя
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		common.RespondBadRequest(c, "не удалось определить тип файла. Разрешены только изображения")
		return
	}

	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		common.RespondBadRequest(c,
			fmt.Sprintf("неподдерживаемый тип файла (%s). Разрешены только изображения", contentType))
		return
	}

	expectedExt := "." + kind.Extension
	// .jpg и .jpeg - это одно и то же
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		common.RespondBadRequest(c,
			fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt))
		return
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			common.RespondInternalError(c, "не удалось сбросить позицию файла")
			return
		}
	}

	relativePath, written, err := h.storage.Save(c.Request.Context(), resourceID, file.Filename, src)
	if err != nil {
		common.RespondInternalError(c, err.Error())
		return
	}

	url := "/media/" + filepath.ToSlash(relativePath)
	if _, err := h.resources.AddMedia(c.Request.Context(), resourceID, service.MediaInput{
		URL:         url,
		ContentType: contentType,
	}); err != nil {
		// Ресурс не принял файл — подчищаем хранилище.
		_ = h.storage.Delete(c.Request.Context(), relativePath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MediaUploadResponse{
		URL:         url,
		ContentType: contentType,
		Size:        written,
	})
}

// listAllowedExtensions возвращает список разрешённых расширений.
func listAllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	return exts
}
