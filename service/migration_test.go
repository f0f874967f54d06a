package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	sharedConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/board_service/config"
	"github.com/Xushengqwer/board_service/models/entities"
	"github.com/Xushengqwer/board_service/repo/mysql"
)

// fakeBackfillRepo 用内存数据重现回填仓储的聚合语义，并记录落库次数。
type fakeBackfillRepo struct {
	threads  []*entities.Post            // 按 ID 升序
	comments map[uint64][]*entities.Post // threadID -> 评论
	updates  map[uint64][3]int64         // threadID -> [sages, maxCommentID, score]
}

func newFakeBackfillRepo() *fakeBackfillRepo {
	return &fakeBackfillRepo{
		comments: make(map[uint64][]*entities.Post),
		updates:  make(map[uint64][3]int64),
	}
}

func (r *fakeBackfillRepo) addThread(id uint64, board string, sages int64, maxCommentID uint64, score int64) {
	r.threads = append(r.threads, &entities.Post{
		ID: id, Board: board, Sages: sages, MaxCommentID: maxCommentID, Score: score,
	})
}

func (r *fakeBackfillRepo) addComment(threadID, id uint64, email string) {
	parent := threadID
	r.comments[threadID] = append(r.comments[threadID], &entities.Post{
		ID: id, ParentID: &parent, Email: email,
	})
}

func (r *fakeBackfillRepo) ForEachThread(ctx context.Context, board string, batchSize int, fn func(thread *entities.Post) error) error {
	for _, thread := range r.threads {
		if thread.Board != board {
			continue
		}
		if err := fn(thread); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeBackfillRepo) CountSageComments(ctx context.Context, threadID uint64) (int64, error) {
	var count int64
	for _, comment := range r.comments[threadID] {
		if strings.EqualFold(comment.Email, "sage") {
			count++
		}
	}
	return count, nil
}

func (r *fakeBackfillRepo) MaxNonSageCommentID(ctx context.Context, threadID uint64) (uint64, error) {
	var max uint64
	for _, comment := range r.comments[threadID] {
		if !strings.EqualFold(comment.Email, "sage") && comment.ID > max {
			max = comment.ID
		}
	}
	return max, nil
}

func (r *fakeBackfillRepo) UpdateRankFields(ctx context.Context, threadID uint64, sages int64, maxCommentID uint64, score int64) error {
	r.updates[threadID] = [3]int64{sages, int64(maxCommentID), score}
	return nil
}

func newMigration(t *testing.T, repo mysql.RankBackfillRepository, boards ...string) MigrationService {
	t.Helper()
	logger, err := core.NewZapLogger(sharedConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("创建测试日志记录器失败: %v", err)
	}
	return NewMigrationService(
		config.BoardsConfig{Names: boards},
		config.RankConfig{SagePenalty: 150, ThreadsPerPage: 15, CommentsPreview: 3},
		repo,
		logger,
	)
}

func TestBackfillRankings(t *testing.T) {
	repo := newFakeBackfillRepo()

	// 派生字段全错的主题帖: 一条普通评论 + 一条 sage 评论
	repo.addThread(100, "b", 0, 0, 0)
	repo.addComment(100, 101, "user@example.com")
	repo.addComment(100, 102, "sage")

	// 没有任何评论、派生字段缺失的主题帖
	repo.addThread(200, "b", 0, 0, 0)

	// 只有 sage 评论的主题帖: max_comment_id 回落到自身 ID
	repo.addThread(300, "b", 0, 0, 0)
	repo.addComment(300, 301, "SAGE")

	svc := newMigration(t, repo, "b")
	if err := svc.BackfillRankings(context.Background()); err != nil {
		t.Fatalf("BackfillRankings 失败: %v", err)
	}

	wants := map[uint64][3]int64{
		100: {1, 101, 101 - 150},    // sages=1, max=101, score=-49
		200: {0, 200, 200},          // 无评论: max 等于自身 ID
		300: {1, 300, 300 - 150},    // 只有 sage: max 回落自身 ID
	}
	for threadID, want := range wants {
		got, ok := repo.updates[threadID]
		if !ok {
			t.Errorf("主题帖 %d 未被回填", threadID)
			continue
		}
		if got != want {
			t.Errorf("主题帖 %d 回填结果错误: 实际 %v 期望 %v", threadID, got, want)
		}
	}
}

// 已经一致的主题帖不产生落库写入，重复执行结果相同。
func TestBackfillIdempotent(t *testing.T) {
	repo := newFakeBackfillRepo()
	repo.addThread(100, "b", 1, 101, -49)
	repo.addComment(100, 101, "user@example.com")
	repo.addComment(100, 102, "sage")

	svc := newMigration(t, repo, "b")
	if err := svc.BackfillRankings(context.Background()); err != nil {
		t.Fatalf("BackfillRankings 失败: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("一致的主题帖不应触发写入，实际写了 %d 条", len(repo.updates))
	}

	if err := svc.BackfillRankings(context.Background()); err != nil {
		t.Fatalf("重复执行失败: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("重复执行不应产生写入，实际写了 %d 条", len(repo.updates))
	}
}

// 单个主题帖回填失败时中止并透传错误。
func TestBackfillAborts(t *testing.T) {
	repo := newFakeBackfillRepo()
	repo.addThread(100, "b", 0, 0, 0)

	wantErr := errors.New("storage down")
	svc := newMigration(t, &failingBackfillRepo{fakeBackfillRepo: repo, err: wantErr}, "b")

	err := svc.BackfillRankings(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("期望透传底层错误，实际 %v", err)
	}
}

type failingBackfillRepo struct {
	*fakeBackfillRepo
	err error
}

func (r *failingBackfillRepo) CountSageComments(ctx context.Context, threadID uint64) (int64, error) {
	return 0, r.err
}
