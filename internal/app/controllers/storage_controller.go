package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcastro/tutormatch/internal/app/models/dto"
	"github.com/rcastro/tutormatch/internal/app/services"
	"github.com/rcastro/tutormatch/internal/middleware"
)

var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// StorageController handles file uploads. The MIME type declared by the
// client is checked here before the payload ever reaches the service; the
// owning entity id travels as a multipart field alongside the file.
type StorageController struct {
	storageService services.StorageService
}

// NewStorageController creates a new StorageController
func NewStorageController(storageService services.StorageService) *StorageController {
	return &StorageController{storageService: storageService}
}

type uploadFn func(ctx *gin.Context, ownerID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error)

func (c *StorageController) handleUpload(ctx *gin.Context, ownerField string, allowPDF bool, upload uploadFn) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "No file provided")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ownerID := ctx.PostForm(ownerField)
	if ownerID == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Missing "+ownerField+" field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageMimeTypes[mimeType] && !(allowPDF && mimeType == "application/pdf") {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeFileTypeInvalid, "Unsupported file type")
		errorDetail = errorDetail.WithDetails(mimeType)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if fileHeader.Size > services.MaxUploadSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds the size limit")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read upload")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read upload")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := upload(ctx, ownerID, fileHeader.Filename, ctx.PostForm("fileName"), content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

func (c *StorageController) writeURL(ctx *gin.Context, url string) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FileURLResponse{URL: url},
		Timestamp: time.Now(),
	})
}

func (c *StorageController) writeDeleted(ctx *gin.Context, err error) {
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "File deleted successfully"},
		Timestamp: time.Now(),
	})
}

// UploadAvatar stores a profile picture and records it on the profile
// @Summary Upload an avatar
// @Tags storage
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param userId formData string true "Profile the avatar belongs to"
// @Param fileName formData string false "Custom filename"
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /storage/avatars [post]
func (c *StorageController) UploadAvatar(ctx *gin.Context) {
	c.handleUpload(ctx, "userId", false, func(g *gin.Context, ownerID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
		return c.storageService.UploadAvatar(g.Request.Context(), ownerID, originalName, customName, content)
	})
}

// GetAvatarURL returns the public URL of a stored avatar
// @Summary Get an avatar URL
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Profile ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.FileURLResponse} "File URL"
// @Router /storage/avatars/{userId}/{fileName} [get]
func (c *StorageController) GetAvatarURL(ctx *gin.Context) {
	c.writeURL(ctx, c.storageService.GetAvatarURL(ctx.Param("userId"), ctx.Param("fileName")))
}

// DeleteAvatar removes a stored avatar and clears it from the profile
// @Summary Delete an avatar
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Profile ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /storage/avatars/{userId}/{fileName} [delete]
func (c *StorageController) DeleteAvatar(ctx *gin.Context) {
	c.writeDeleted(ctx, c.storageService.DeleteAvatar(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("fileName")))
}

// UploadPaymentProof stores a membership payment receipt
// @Summary Upload a payment proof
// @Tags storage
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or PDF file"
// @Param userId formData string true "User the receipt belongs to"
// @Param fileName formData string false "Custom filename"
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Router /storage/payment-proofs [post]
func (c *StorageController) UploadPaymentProof(ctx *gin.Context) {
	c.handleUpload(ctx, "userId", true, func(g *gin.Context, ownerID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
		return c.storageService.UploadPaymentProof(g.Request.Context(), ownerID, originalName, customName, content)
	})
}

// GetPaymentProofURL returns the path of a stored payment receipt
// @Summary Get a payment proof URL
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.FileURLResponse} "File URL"
// @Router /storage/payment-proofs/{userId}/{fileName} [get]
func (c *StorageController) GetPaymentProofURL(ctx *gin.Context) {
	c.writeURL(ctx, c.storageService.GetPaymentProofURL(ctx.Param("userId"), ctx.Param("fileName")))
}

// DeletePaymentProof removes a stored payment receipt
// @Summary Delete a payment proof
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted"
// @Router /storage/payment-proofs/{userId}/{fileName} [delete]
func (c *StorageController) DeletePaymentProof(ctx *gin.Context) {
	c.writeDeleted(ctx, c.storageService.DeletePaymentProof(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("fileName")))
}

// UploadTutoringImage stores a session cover image and records it on the
// session.
// @Summary Upload a tutoring image
// @Tags storage
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param tutoringId formData string true "Tutoring session the image belongs to"
// @Param fileName formData string false "Custom filename"
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 404 {object} dto.ErrorResponse "Tutoring session not found"
// @Router /storage/tutoring-images [post]
func (c *StorageController) UploadTutoringImage(ctx *gin.Context) {
	c.handleUpload(ctx, "tutoringId", false, func(g *gin.Context, ownerID, originalName, customName string, content []byte) (*dto.FileUploadResponse, error) {
		return c.storageService.UploadTutoringImage(g.Request.Context(), ownerID, originalName, customName, content)
	})
}

// GetTutoringImageURL returns the public URL of a stored session image
// @Summary Get a tutoring image URL
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param tutoringId path string true "Tutoring session ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.FileURLResponse} "File URL"
// @Router /storage/tutoring-images/{tutoringId}/{fileName} [get]
func (c *StorageController) GetTutoringImageURL(ctx *gin.Context) {
	c.writeURL(ctx, c.storageService.GetTutoringImageURL(ctx.Param("tutoringId"), ctx.Param("fileName")))
}

// DeleteTutoringImage removes a session cover image and clears it from the
// session.
// @Summary Delete a tutoring image
// @Tags storage
// @Produce json
// @Security BearerAuth
// @Param tutoringId path string true "Tutoring session ID"
// @Param fileName path string true "Stored filename"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "File deleted"
// @Failure 404 {object} dto.ErrorResponse "Tutoring session not found"
// @Router /storage/tutoring-images/{tutoringId}/{fileName} [delete]
func (c *StorageController) DeleteTutoringImage(ctx *gin.Context) {
	c.writeDeleted(ctx, c.storageService.DeleteTutoringImage(ctx.Request.Context(), ctx.Param("tutoringId"), ctx.Param("fileName")))
}
