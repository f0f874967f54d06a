package main

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/models/dto"
	"github.com/Xushengqwer/board_service/service"
)

// Seed 通过服务层为每个板块填充主题帖与评论。
// 走真实的 AddPost 路径，ID 分配与排序更新都与线上一致；
// 不并发，保证生成的 ID 顺序可预期，便于人工核对 score。
func Seed(ctx context.Context, boardSvc service.BoardService, logger *core.ZapLogger, boards []string, numThreads int) {
	logger.Info("开始填充测试数据 (通过服务层)...",
		zap.Strings("boards", boards),
		zap.Int("threadsPerBoard", numThreads),
	)

	for _, board := range boards {
		for i := 0; i < numThreads; i++ {
			thread, err := boardSvc.AddPost(ctx, board, &dto.CreatePostRequest{
				Email: gofakeit.Email(),
				Image: gofakeit.ImageURL(640, 480),
				Text:  gofakeit.Paragraph(2, 4, 12, "\n\n"),
			})
			if err != nil {
				logger.Error(fmt.Sprintf("创建主题帖 %d/%d 失败", i+1, numThreads),
					zap.String("board", board),
					zap.Error(err),
				)
				continue
			}

			// 每个主题帖随机挂几条评论，其中偶尔混入 sage 回复
			numComments := gofakeit.Number(0, 6)
			for j := 0; j < numComments; j++ {
				email := gofakeit.Email()
				if gofakeit.Number(0, 4) == 0 {
					email = "sage"
				}
				parent := thread.ID
				if _, err := boardSvc.AddPost(ctx, board, &dto.CreatePostRequest{
					Email:  email,
					Text:   gofakeit.Sentence(gofakeit.Number(5, 20)),
					Parent: &parent,
				}); err != nil {
					logger.Error("创建评论失败",
						zap.String("board", board),
						zap.Uint64("threadID", thread.ID),
						zap.Error(err),
					)
				}
			}

			logger.Info(fmt.Sprintf("成功创建主题帖 %d/%d", i+1, numThreads),
				zap.String("board", board),
				zap.Uint64("threadID", thread.ID),
				zap.Int("comments", numComments),
			)
		}
	}

	logger.Info("测试数据填充完毕 (通过服务层)。")
}
