package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/board_service/models/dto"
	"github.com/Xushengqwer/board_service/models/vo"
	"github.com/Xushengqwer/board_service/myErrors"
)

// stubBoardService 以函数字段桩掉服务层，未设置的方法一律视为测试缺陷。
type stubBoardService struct {
	listBoard  func(ctx context.Context, board string) (*vo.BoardPageVO, error)
	getCatalog func(ctx context.Context, board string) (*vo.CatalogVO, error)
	getThread  func(ctx context.Context, board string, id uint64) (*vo.ThreadVO, error)
	addPost    func(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error)
	deletePost func(ctx context.Context, board string, id uint64) error
}

func (s *stubBoardService) ListBoard(ctx context.Context, board string) (*vo.BoardPageVO, error) {
	return s.listBoard(ctx, board)
}

func (s *stubBoardService) GetCatalog(ctx context.Context, board string) (*vo.CatalogVO, error) {
	return s.getCatalog(ctx, board)
}

func (s *stubBoardService) GetThread(ctx context.Context, board string, id uint64) (*vo.ThreadVO, error) {
	return s.getThread(ctx, board, id)
}

func (s *stubBoardService) AddPost(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error) {
	return s.addPost(ctx, board, req)
}

func (s *stubBoardService) DeletePost(ctx context.Context, board string, id uint64) error {
	return s.deletePost(ctx, board, id)
}

func (s *stubBoardService) WarmCatalog(ctx context.Context, board string) error { return nil }

func (s *stubBoardService) Boards() []string { return []string{"b"} }

func setupTestRouter(svc *stubBoardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBoardController(svc).RegisterRoutes(router.Group("/api/v1/board"))
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// 载荷字段白名单之外的键必须整体拒绝，且不触及服务层。
func TestCreatePostRejectsUnknownFields(t *testing.T) {
	called := false
	svc := &stubBoardService{
		addPost: func(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error) {
			called = true
			return &vo.PostVO{ID: 100}, nil
		},
	}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/v1/board/boards/b/posts",
		`{"text": "hello", "admin": true}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("未知字段应返回 400，实际 %d", w.Code)
	}
	if called {
		t.Error("拒绝发生在服务层之前，不应触达 AddPost")
	}
}

func TestCreatePostAcceptsAllowedFields(t *testing.T) {
	var got *dto.CreatePostRequest
	svc := &stubBoardService{
		addPost: func(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error) {
			got = req
			return &vo.PostVO{ID: 101}, nil
		},
	}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/v1/board/boards/b/posts",
		`{"email": "sage", "image": "https://i.example.com/a.png", "text": "hi", "parent": 100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("合法载荷应返回 200，实际 %d，响应 %s", w.Code, w.Body.String())
	}
	if got == nil {
		t.Fatal("服务层未被调用")
	}
	if got.Email != "sage" || got.Text != "hi" || got.Parent == nil || *got.Parent != 100 {
		t.Errorf("载荷解析错误: %+v", got)
	}
}

func TestCreatePostMalformedJSON(t *testing.T) {
	svc := &stubBoardService{
		addPost: func(ctx context.Context, board string, req *dto.CreatePostRequest) (*vo.PostVO, error) {
			t.Fatal("畸形载荷不应触达服务层")
			return nil, nil
		},
	}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/v1/board/boards/b/posts", `{"text": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("畸形 JSON 应返回 400，实际 %d", w.Code)
	}
}

// 引擎错误到 HTTP 状态码的映射。
func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"校验错误映射 400", myErrors.NewValidationError("text", "太长"), http.StatusBadRequest},
		{"未找到映射 404", commonerrors.ErrRepoNotFound, http.StatusNotFound},
		{"存储不可用映射 503", myErrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBoardService{
				listBoard: func(ctx context.Context, board string) (*vo.BoardPageVO, error) {
					return nil, tt.err
				},
			}
			router := setupTestRouter(svc)

			w := doRequest(router, http.MethodGet, "/api/v1/board/boards/b/threads", "")
			if w.Code != tt.wantCode {
				t.Errorf("期望状态码 %d，实际 %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestGetThreadInvalidID(t *testing.T) {
	svc := &stubBoardService{
		getThread: func(ctx context.Context, board string, id uint64) (*vo.ThreadVO, error) {
			t.Fatal("非法 ID 不应触达服务层")
			return nil, nil
		},
	}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/v1/board/boards/b/threads/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法 ID 应返回 400，实际 %d", w.Code)
	}
}

func TestDeletePost(t *testing.T) {
	var gotBoard string
	var gotID uint64
	svc := &stubBoardService{
		deletePost: func(ctx context.Context, board string, id uint64) error {
			gotBoard, gotID = board, id
			return nil
		},
	}
	router := setupTestRouter(svc)

	w := doRequest(router, http.MethodDelete, "/api/v1/board/boards/b/posts/102", "")
	if w.Code != http.StatusOK {
		t.Fatalf("删除成功应返回 200，实际 %d", w.Code)
	}
	if gotBoard != "b" || gotID != 102 {
		t.Errorf("删除参数传递错误: board=%q id=%d", gotBoard, gotID)
	}
}
