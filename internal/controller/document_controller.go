package controller

import (
	"bytes"
	"io"
	"quizgen_backend/internal/service"
	"quizgen_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

// Upload godoc
// @Summary 上传源文档
// @Description 接收文本或 PDF 文件，纯文本立即提取正文
// @Tags 文档
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "文档文件"
// @Success 201 {object} util.Response{data=model.Document}
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	if !util.HasAllowedExtension(fileHeader.Filename, util.AllowedDocumentExtensions) {
		util.BadRequest(ctx, "unsupported file extension")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// MIME 嗅探会消耗前 512 字节，先整体读出
	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{"text/", util.MimePDF})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.DocumentService.StoreUpload(
		ctx.Request.Context(),
		claims.UserID,
		fileHeader.Filename,
		bytes.NewReader(data),
		int64(len(data)),
		mimeType,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, doc)
}

// List godoc
// @Summary 我上传的文档列表
// @Tags 文档
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码，默认 1"
// @Param   limit query int false "每页条数，默认 20"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	docs, total, err := c.DocumentService.ListByUser(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  docs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Delete godoc
// @Summary 删除文档
// @Tags 文档
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "文档 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	docID := util.MustParseUint(ctx.Param("id"))

	err := c.DocumentService.Delete(ctx.Request.Context(), docID, claims.UserID)
	switch {
	case err == util.ErrDocumentNotFound:
		util.NotFound(ctx)
	case err == util.ErrPermissionDenied:
		util.Forbidden(ctx)
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, nil)
	}
}
