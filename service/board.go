package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/models/dto"
	"github.com/Xushengqwer/board_service/models/entities"
	"github.com/Xushengqwer/board_service/models/vo"
	"github.com/Xushengqwer/board_service/mq/producer"
	"github.com/Xushengqwer/board_service/myErrors"
	"github.com/Xushengqwer/board_service/render"
	"github.com/Xushengqwer/board_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/board_service/repo/redis"
)

// 入口校验的字段长度上限（达到上限即拒绝，不做截断）
const (
	maxEmailLen = 100
	maxImageLen = 500
	maxTextLen  = 20000
)

// BoardService 定义了板块存储引擎的核心业务接口。
// 它组合 ID 分配器、排序引擎、尾部窗口分页与内容净化管线，
// 对外提供板块级别的增删查操作。
type BoardService interface {
	// ListBoard 返回板块列表页：最近被顶的一页主题帖（顶得最近的在前），
	// 每个主题帖后跟其最近的若干条评论，全部元素已净化渲染。
	ListBoard(ctx context.Context, board string) (*vo.BoardPageVO, error)

	// GetCatalog 返回板块目录：全部主题帖按 score 升序，不附带评论。
	// - 优先读 Redis 缓存，未命中回源 MySQL 并回填缓存。
	GetCatalog(ctx context.Context, board string) (*vo.CatalogVO, error)

	// GetThread 返回主题帖及其全部评论（按插入顺序）。
	// - 评论 ID、其他板块的主题帖 ID 都视为未找到。
	GetThread(ctx context.Context, board string, id uint64) (*vo.ThreadVO, error)

	// AddPost 处理发帖（主题帖或评论）的完整业务流程:
	// 校验 → 分配全局 ID → 排序引擎更新 → 持久化 → 失效缓存 → 异步事件。
	// - 任何校验失败都发生在 ID 分配之前，不产生存储副作用。
	AddPost(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error)

	// DeletePost 硬删除板块内的一个帖子。
	// - 不级联删除评论（孤儿评论是允许的），不重算其他主题帖的 score。
	// - 删除权限由外部网关裁决，这里不做鉴权。
	DeletePost(ctx context.Context, board string, id uint64) error

	// WarmCatalog 从 MySQL 重建并写入指定板块的目录缓存（供定时任务预热）。
	WarmCatalog(ctx context.Context, board string) error

	// Boards 返回配置的全部板块名。
	Boards() []string
}

// boardService 是 BoardService 接口的具体实现。
type boardService struct {
	boards     map[string]struct{}     // 合法板块集合
	boardNames []string                // 保序的板块名列表
	rankCfg    config.RankConfig       // 排序参数（sage 罚分、窗口大小）
	postRepo   mysql.PostRepository    // 帖子的 MySQL 操作
	allocator  mysql.IDAllocator       // 全局 ID 分配器
	boardCache redisrepo.BoardCache    // 板块目录的 Redis 缓存
	renderer   *render.Renderer        // 读路径的内容净化管线
	kafkaSvc   *producer.KafkaProducer // Kafka 生产者，可能为 nil（未配置 brokers）
	logger     *core.ZapLogger         // 日志记录器
}

// NewBoardService 是 boardService 的构造函数，通过依赖注入初始化服务实例。
func NewBoardService(
	boardsCfg config.BoardsConfig,
	rankCfg config.RankConfig,
	postRepo mysql.PostRepository,
	allocator mysql.IDAllocator,
	boardCache redisrepo.BoardCache,
	renderer *render.Renderer,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) BoardService {
	boards := make(map[string]struct{}, len(boardsCfg.Names))
	for _, name := range boardsCfg.Names {
		boards[name] = struct{}{}
	}
	return &boardService{
		boards:     boards,
		boardNames: boardsCfg.Names,
		rankCfg:    rankCfg,
		postRepo:   postRepo,
		allocator:  allocator,
		boardCache: boardCache,
		renderer:   renderer,
		kafkaSvc:   kafkaSvc,
		logger:     logger,
	}
}

// requireBoard 校验板块名是否在配置的集合内，未知板块按未找到处理。
func (s *boardService) requireBoard(board string) error {
	if _, ok := s.boards[board]; !ok {
		return fmt.Errorf("未知板块 %q: %w", board, commonerrors.ErrRepoNotFound)
	}
	return nil
}

// Boards 返回配置的全部板块名。
func (s *boardService) Boards() []string {
	return s.boardNames
}

// ListBoard 实现板块列表页。
func (s *boardService) ListBoard(ctx context.Context, board string) (*vo.BoardPageVO, error) {
	if err := s.requireBoard(board); err != nil {
		return nil, err
	}

	// 尾部窗口第 0 页是 score 最高的一段（升序），翻转后顶得最近的在最前
	threads, err := s.postRepo.ListThreadsTailPage(ctx, board, 0, s.rankCfg.ThreadsPerPage)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(threads)-1; i < j; i, j = i+1, j-1 {
		threads[i], threads[j] = threads[j], threads[i]
	}

	page := &vo.BoardPageVO{
		Board: board,
		Posts: make([]*vo.PostVO, 0, len(threads)*(1+s.rankCfg.CommentsPreview)),
	}
	for _, thread := range threads {
		comments, err := s.postRepo.ListRecentComments(ctx, thread.ID, s.rankCfg.CommentsPreview)
		if err != nil {
			return nil, err
		}
		page.Posts = append(page.Posts, s.renderer.RenderPost(thread))
		page.Posts = append(page.Posts, s.renderer.RenderPosts(comments)...)
	}
	return page, nil
}

// GetCatalog 实现板块目录读取，cache-aside 回源。
func (s *boardService) GetCatalog(ctx context.Context, board string) (*vo.CatalogVO, error) {
	if err := s.requireBoard(board); err != nil {
		return nil, err
	}

	catalog, err := s.boardCache.GetCatalog(ctx, board)
	if err == nil {
		return catalog, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		// 缓存层故障不阻塞读路径，记日志后直接回源
		s.logger.Warn("目录缓存读取异常，回源 MySQL", zap.String("board", board), zap.Error(err))
	}

	catalog, err = s.buildCatalog(ctx, board)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.boardCache.SetCatalog(ctx, board, catalog); cacheErr != nil {
		s.logger.Warn("回填目录缓存失败", zap.String("board", board), zap.Error(cacheErr))
	}
	return catalog, nil
}

// buildCatalog 从 MySQL 构建净化后的目录 VO。
func (s *boardService) buildCatalog(ctx context.Context, board string) (*vo.CatalogVO, error) {
	threads, err := s.postRepo.ListAllThreadsByScore(ctx, board)
	if err != nil {
		return nil, err
	}
	return &vo.CatalogVO{
		Board:   board,
		Threads: s.renderer.RenderPosts(threads),
	}, nil
}

// GetThread 实现主题帖详情读取。
func (s *boardService) GetThread(ctx context.Context, board string, id uint64) (*vo.ThreadVO, error) {
	if err := s.requireBoard(board); err != nil {
		return nil, err
	}

	thread, err := s.postRepo.GetThread(ctx, board, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.postRepo.ListComments(ctx, thread.ID)
	if err != nil {
		return nil, err
	}

	posts := make([]*vo.PostVO, 0, 1+len(comments))
	posts = append(posts, s.renderer.RenderPost(thread))
	posts = append(posts, s.renderer.RenderPosts(comments)...)
	return &vo.ThreadVO{Board: board, Posts: posts}, nil
}

// validateCreate 执行字段长度校验（白名单校验由控制器的严格解码完成）。
// 达到上限即拒绝，错误信息指出具体字段，便于调用方修正。
func validateCreate(req *dto.CreatePostRequest) error {
	if len(req.Email) >= maxEmailLen {
		return myErrors.NewValidationError("email", fmt.Sprintf("长度必须小于 %d", maxEmailLen))
	}
	if len(req.Image) >= maxImageLen {
		return myErrors.NewValidationError("image", fmt.Sprintf("长度必须小于 %d", maxImageLen))
	}
	if len(req.Text) >= maxTextLen {
		return myErrors.NewValidationError("text", fmt.Sprintf("长度必须小于 %d", maxTextLen))
	}
	return nil
}

// AddPost 实现发帖流程。
func (s *boardService) AddPost(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error) {
	// 1. 板块与字段校验，全部发生在任何存储副作用之前
	if err := s.requireBoard(board); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	// 2. 父引用校验：评论只能挂在同板块的主题帖上（一层嵌套）。
	//    GetThread 只匹配主题帖行，挂评论或挂跨板块 ID 都会在这里被拒绝。
	var parent *entities.Post
	if req.Parent != nil {
		var err error
		parent, err = s.postRepo.GetThread(ctx, board, *req.Parent)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				return nil, myErrors.NewValidationError("parent", fmt.Sprintf("引用的主题帖 %d 在板块 %q 中不存在", *req.Parent, board))
			}
			return nil, err
		}
	}

	// 3. 分配全局 ID（失败则整个操作失败，绝不持久化没有 ID 的帖子）
	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return nil, err
	}

	post := &entities.Post{
		ID:    id,
		Board: board,
		Email: req.Email,
		Image: req.Image,
		Text:  req.Text,
	}

	// 4. 排序引擎更新
	if parent != nil {
		parentID := parent.ID
		post.ParentID = &parentID
		// 对父主题帖的更新是存储侧的单语句原子操作
		if IsSage(req.Email) {
			err = s.postRepo.SageThread(ctx, parentID, s.rankCfg.SagePenalty)
		} else {
			err = s.postRepo.BumpThread(ctx, parentID, id, s.rankCfg.SagePenalty)
		}
		if err != nil {
			return nil, err
		}
	} else {
		// 新主题帖：max_comment_id 从自身 ID 起算，sages 为 0
		post.Sages = 0
		post.MaxCommentID = id
		post.Score = ComputeScore(id, 0, s.rankCfg.SagePenalty)
	}

	// 5. 持久化
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("帖子创建成功",
		zap.Uint64("postID", post.ID),
		zap.String("board", board),
		zap.Bool("isThread", post.IsThread()),
	)

	// 6. 失效目录缓存（失败只记日志，不影响本次写入的结果）
	if err := s.boardCache.InvalidateBoard(ctx, board); err != nil {
		s.logger.Warn("发帖后失效目录缓存失败", zap.String("board", board), zap.Error(err))
	}

	// 7. 异步发布创建事件，不阻塞响应
	s.publishCreated(post)

	return s.renderer.RenderPost(post), nil
}

// DeletePost 实现删帖流程。
func (s *boardService) DeletePost(ctx context.Context, board string, id uint64) error {
	if err := s.requireBoard(board); err != nil {
		return err
	}

	if err := s.postRepo.DeletePost(ctx, board, id); err != nil {
		return err
	}
	s.logger.Info("帖子已删除", zap.String("board", board), zap.Uint64("postID", id))

	if err := s.boardCache.InvalidateBoard(ctx, board); err != nil {
		s.logger.Warn("删帖后失效目录缓存失败", zap.String("board", board), zap.Error(err))
	}

	s.publishDeleted(board, id)
	return nil
}

// WarmCatalog 实现目录缓存预热。
func (s *boardService) WarmCatalog(ctx context.Context, board string) error {
	if err := s.requireBoard(board); err != nil {
		return err
	}
	catalog, err := s.buildCatalog(ctx, board)
	if err != nil {
		return err
	}
	return s.boardCache.SetCatalog(ctx, board, catalog)
}

// publishCreated 异步发送帖子创建事件。
// 事件投递失败只记日志：下游同步是尽力而为，不反悔已完成的写入。
func (s *boardService) publishCreated(post *entities.Post) {
	if s.kafkaSvc == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.kafkaSvc.SendPostCreatedEvent(ctx, producer.PostEventData{
			PostID:   post.ID,
			Board:    post.Board,
			ParentID: post.ParentID,
		}); err != nil {
			s.logger.Warn("发送帖子创建事件失败", zap.Uint64("postID", post.ID), zap.Error(err))
		}
	}()
}

// publishDeleted 异步发送帖子删除事件。
func (s *boardService) publishDeleted(board string, id uint64) {
	if s.kafkaSvc == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.kafkaSvc.SendPostDeletedEvent(ctx, producer.PostEventData{
			PostID: id,
			Board:  board,
		}); err != nil {
			s.logger.Warn("发送帖子删除事件失败", zap.Uint64("postID", id), zap.Error(err))
		}
	}()
}
