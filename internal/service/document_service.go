package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"quizgen_backend/internal/model"
	"quizgen_backend/internal/repository"
	"quizgen_backend/internal/util"
	"quizgen_backend/pkg/logger"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentService 管理上传的源文档及其提取文本
type DocumentService struct {
	DocRepo *repository.DocumentRepository
	Storage *StorageService
}

func NewDocumentService(docRepo *repository.DocumentRepository, storage *StorageService) *DocumentService {
	return &DocumentService{
		DocRepo: docRepo,
		Storage: storage,
	}
}

// StoreUpload 保存上传文件并记录元数据。纯文本文件直接提取正文，
// 其他格式留待外部提取流程回填
func (s *DocumentService) StoreUpload(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (*model.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	storageName := fmt.Sprintf("documents/%s%s", uuid.New().String(), ext)

	var extracted string
	if util.IsText(contentType) || ext == ".txt" || ext == ".md" {
		data, err := io.ReadAll(io.LimitReader(reader, 10<<20))
		if err != nil {
			return nil, err
		}
		extracted = string(data)
		reader = strings.NewReader(extracted)
		size = int64(len(extracted))
	} else if util.IsPDF(contentType) {
		// PDF 暂不做内联提取，生成接口会拒绝未处理文档
		logger.Log.Info("pdf stored without inline text extraction",
			zap.String("filename", filename),
		)
	}

	if _, err := s.Storage.Upload(ctx, storageName, reader, size, contentType); err != nil {
		return nil, err
	}

	doc := &model.Document{
		UserID:        userID,
		Filename:      filename,
		StoragePath:   storageName,
		FileSize:      size,
		ContentType:   contentType,
		ExtractedText: extracted,
		Processed:     extracted != "",
	}

	if err := s.DocRepo.Create(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// ExtractedText 取文档正文，未完成提取时报错
func (s *DocumentService) ExtractedText(docID, userID uint) (string, *uint, error) {
	doc, err := s.DocRepo.FindByID(docID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, util.ErrDocumentNotFound
		}
		return "", nil, err
	}

	if doc.UserID != userID {
		return "", nil, util.ErrPermissionDenied
	}

	if !doc.Processed {
		return "", nil, util.ErrDocumentNotProcessed
	}

	id := doc.ID
	return doc.ExtractedText, &id, nil
}

// Delete 删除文档记录及其存储对象，仅限属主
func (s *DocumentService) Delete(ctx context.Context, docID, userID uint) error {
	doc, err := s.DocRepo.FindByID(docID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrDocumentNotFound
		}
		return err
	}

	if doc.UserID != userID {
		return util.ErrPermissionDenied
	}

	if err := s.Storage.Delete(ctx, doc.StoragePath); err != nil {
		// 存储对象删除失败不阻塞记录删除
		logger.Log.Warn("failed to delete stored object",
			zap.String("path", doc.StoragePath),
			zap.Error(err),
		)
	}

	return s.DocRepo.Delete(doc.ID)
}

func (s *DocumentService) ListByUser(userID uint, page, limit int) ([]model.Document, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.DocRepo.ListByUserPaged(userID, page, limit)
}
