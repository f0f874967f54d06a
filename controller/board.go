package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response" // 通用响应包
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/board_service/models/dto"
	"github.com/Xushengqwer/board_service/myErrors"
	"github.com/Xushengqwer/board_service/service"
)

// BoardController 定义板块控制器的结构体
type BoardController struct {
	boardService service.BoardService // 服务层接口，通过依赖注入传入
}

// NewBoardController 构造函数，用于创建 BoardController 实例
func NewBoardController(boardService service.BoardService) *BoardController {
	return &BoardController{
		boardService: boardService,
	}
}

// respondServiceError 把引擎错误分类映射为 HTTP 响应。
// - 校验/未找到错误带着足够的细节直接下发；
// - 存储不可用只下发"稍后重试"，内部原因不出网。
func respondServiceError(c *gin.Context, err error) {
	var vErr *myErrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "参数校验失败: "+vErr.Error())
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "请求的板块或帖子不存在")
	case errors.Is(err, myErrors.ErrStoreUnavailable):
		response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, "服务暂时不可用，请稍后重试")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务器内部错误")
	}
}

// ListBoard 获取板块列表页
// @Summary      获取板块列表页
// @Description  返回板块最近被顶的一页主题帖（最近在前），每个主题帖附带最近几条评论，全部内容已净化渲染。
// @Tags         boards (板块)
// @Accept       json
// @Produce      json
// @Param        board path string true "板块名" maxLength(16)
// @Success      200 {object} vo.BoardPageResponseWrapper "成功响应，包含帖子分组的扁平序列"
// @Failure      404 {object} vo.BaseResponseWrapper "板块不存在"
// @Failure      503 {object} vo.BaseResponseWrapper "存储暂时不可用"
// @Router       /api/v1/board/boards/{board}/threads [get]
func (ctrl *BoardController) ListBoard(c *gin.Context) {
	board := c.Param("board")

	page, err := ctrl.boardService.ListBoard(c.Request.Context(), board)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, page, "板块列表获取成功")
}

// GetCatalog 获取板块目录
// @Summary      获取板块目录
// @Description  返回板块内全部主题帖（按 score 升序），不附带评论。
// @Tags         boards (板块)
// @Accept       json
// @Produce      json
// @Param        board path string true "板块名" maxLength(16)
// @Success      200 {object} vo.CatalogResponseWrapper "成功响应，包含全部主题帖"
// @Failure      404 {object} vo.BaseResponseWrapper "板块不存在"
// @Failure      503 {object} vo.BaseResponseWrapper "存储暂时不可用"
// @Router       /api/v1/board/boards/{board}/catalog [get]
func (ctrl *BoardController) GetCatalog(c *gin.Context) {
	board := c.Param("board")

	catalog, err := ctrl.boardService.GetCatalog(c.Request.Context(), board)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, catalog, "板块目录获取成功")
}

// GetThread 获取主题帖详情
// @Summary      获取主题帖及其全部评论
// @Description  返回指定主题帖与其全部评论（按插入顺序）。评论 ID 或其他板块的 ID 视为未找到。
// @Tags         boards (板块)
// @Accept       json
// @Produce      json
// @Param        board path string true "板块名" maxLength(16)
// @Param        id path uint64 true "主题帖 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.ThreadResponseWrapper "成功响应，Posts[0] 为主题帖本身"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID"
// @Failure      404 {object} vo.BaseResponseWrapper "板块或主题帖不存在"
// @Failure      503 {object} vo.BaseResponseWrapper "存储暂时不可用"
// @Router       /api/v1/board/boards/{board}/threads/{id} [get]
func (ctrl *BoardController) GetThread(c *gin.Context) {
	board := c.Param("board")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID: "+c.Param("id"))
		return
	}

	thread, err := ctrl.boardService.GetThread(c.Request.Context(), board, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, thread, "主题帖获取成功")
}

// CreatePost 发布帖子（主题帖或评论）
// @Summary      发布帖子
// @Description  在指定板块发布主题帖（无 parent）或评论（parent 指向同板块主题帖）。载荷字段白名单为 {email, image, text, parent}，出现任何其他字段整体拒绝；email 为 "sage" 的评论不顶帖。
// @Tags         boards (板块)
// @Accept       json
// @Produce      json
// @Param        board path string true "板块名" maxLength(16)
// @Param        request body dto.CreatePostRequest true "帖子载荷"
// @Success      200 {object} vo.PostResponseWrapper "成功响应，包含分配的全局 ID 与净化后的内容"
// @Failure      400 {object} vo.BaseResponseWrapper "载荷含未知字段、字段超长或父引用非法"
// @Failure      404 {object} vo.BaseResponseWrapper "板块不存在"
// @Failure      503 {object} vo.BaseResponseWrapper "ID 分配或存储暂时不可用"
// @Router       /api/v1/board/boards/{board}/posts [post]
func (ctrl *BoardController) CreatePost(c *gin.Context) {
	board := c.Param("board")

	// 严格解码：字段白名单之外的任何键都在这里被拒绝，
	// 此时尚未发生任何存储副作用（包括 ID 分配）。
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	var req dto.CreatePostRequest
	if err := decoder.Decode(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求载荷: "+err.Error())
		return
	}

	created, err := ctrl.boardService.AddPost(c.Request.Context(), board, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, created, "帖子发布成功")
}

// DeletePost 删除帖子
// @Summary      删除帖子
// @Description  硬删除板块内指定 ID 的帖子。不级联删除评论，也不重算其他主题帖的 score；删除权限由上游网关裁决。
// @Tags         boards (板块)
// @Accept       json
// @Produce      json
// @Param        board path string true "板块名" maxLength(16)
// @Param        id path uint64 true "帖子 ID" format(uint64) minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID"
// @Failure      404 {object} vo.BaseResponseWrapper "板块或帖子不存在"
// @Failure      503 {object} vo.BaseResponseWrapper "存储暂时不可用"
// @Router       /api/v1/board/boards/{board}/posts/{id} [delete]
func (ctrl *BoardController) DeletePost(c *gin.Context) {
	board := c.Param("board")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID: "+c.Param("id"))
		return
	}

	if err := ctrl.boardService.DeletePost(c.Request.Context(), board, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess[any](c, nil, "帖子删除成功")
}

// RegisterRoutes 注册 BoardController 的路由
func (ctrl *BoardController) RegisterRoutes(group *gin.RouterGroup) {
	boards := group.Group("/boards/:board")
	{
		boards.GET("/threads", ctrl.ListBoard)       // GET    /api/v1/board/boards/:board/threads
		boards.GET("/threads/:id", ctrl.GetThread)   // GET    /api/v1/board/boards/:board/threads/:id
		boards.GET("/catalog", ctrl.GetCatalog)      // GET    /api/v1/board/boards/:board/catalog
		boards.POST("/posts", ctrl.CreatePost)       // POST   /api/v1/board/boards/:board/posts
		boards.DELETE("/posts/:id", ctrl.DeletePost) // DELETE /api/v1/board/boards/:board/posts/:id
	}
}
