package controller

import (
	"errors"
	"quizgen_backend/internal/service"
	"quizgen_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService     *service.QuizService
	GradingService  *service.GradingService
	DocumentService *service.DocumentService
}

func NewQuizController(quizService *service.QuizService, gradingService *service.GradingService, documentService *service.DocumentService) *QuizController {
	return &QuizController{
		QuizService:     quizService,
		GradingService:  gradingService,
		DocumentService: documentService,
	}
}

// GenerateRequest 建题请求，正文三选一：text 字段、已上传文档 ID、multipart 文件
// swagger:model GenerateRequest
type GenerateRequest struct {
	Text          string `json:"text"`
	DocumentID    *uint  `json:"documentId"`
	Title         string `json:"title"`
	NumQuestions  any    `json:"numQuestions"`
	Difficulty    string `json:"difficulty"`
	QuestionTypes string `json:"questionTypes"`
}

// Generate godoc
// @Summary 根据文本生成测验
// @Description 调用模型从正文出题，失败时使用内置兜底题库，建题只在存储出错时失败
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateRequest true "建题参数"
// @Success 201 {object} util.Response{data=service.CreateResult} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "存储失败"
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	text := req.Text
	documentID := req.DocumentID
	if text == "" && documentID != nil {
		extracted, docID, err := c.DocumentService.ExtractedText(*documentID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, util.ErrDocumentNotFound):
				util.NotFound(ctx)
			case errors.Is(err, util.ErrPermissionDenied):
				util.Forbidden(ctx)
			case errors.Is(err, util.ErrDocumentNotProcessed):
				util.BadRequest(ctx, err.Error())
			default:
				util.LogInternalError(ctx, err)
			}
			return
		}
		text = extracted
		documentID = docID
	}

	rawSettings := map[string]interface{}{
		"title":         req.Title,
		"numQuestions":  req.NumQuestions,
		"difficulty":    req.Difficulty,
		"questionTypes": req.QuestionTypes,
	}

	result, err := c.QuizService.CreateFromText(ctx.Request.Context(), text, rawSettings, claims.UserID, documentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// List godoc
// @Summary 我创建的测验列表
// @Description 每个测验附带该用户的作答次数与最好成绩
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.QuizWithAttempts}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizzes, err := c.QuizService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	attempts, err := c.GradingService.ListUserAttempts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, service.AttachAttemptSummaries(quizzes, attempts))
}

// Get godoc
// @Summary 获取测验（学生视角）
// @Description 返回题目和选项，不暴露正确答案
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.StudentQuizView}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	view, err := c.QuizService.GetStudentView(ctx.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// Delete godoc
// @Summary 删除测验
// @Description 仅创建者可删除，级联删除题目与历史作答
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))

	if err := c.QuizService.Delete(ctx.Request.Context(), quizID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": quizID})
}

// SubmitRequest 交卷请求，键为题目ID，值为作答文本
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交作答并判分
// @Description 未作答的题目判错计零分，未知题目ID忽略
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body SubmitRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GradingService.SubmitAttempt(ctx.Request.Context(), quizID, claims.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEmptyQuiz):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// ListAttempts godoc
// @Summary 某测验下我的历史作答
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))

	attempts, err := c.GradingService.ListAttempts(quizID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// GetAttempt godoc
// @Summary 作答详情
// @Description 含逐题判分结果，仅本人可见
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   attemptId path int true "作答ID"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/quizzes/{id}/attempts/{attemptId} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID := util.MustParseUint(ctx.Param("attemptId"))

	result, err := c.GradingService.GetAttemptResult(attemptID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
