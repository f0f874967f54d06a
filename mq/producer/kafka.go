package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/board_service/config"
)

// PostEventData 是帖子事件携带的核心数据。
// 下游（搜索索引、风控）拿到 ID 后自行回源取正文，事件里不放原始文本。
type PostEventData struct {
	PostID   uint64  `json:"post_id"`             // 帖子全局 ID
	Board    string  `json:"board"`               // 所属板块
	ParentID *uint64 `json:"parent_id,omitempty"` // 评论的父主题帖 ID，主题帖为空
}

// PostCreatedEvent 帖子创建事件。
type PostCreatedEvent struct {
	EventID   string        `json:"event_id"`  // 事件唯一 ID
	Timestamp time.Time     `json:"timestamp"` // 事件产生时间
	Post      PostEventData `json:"post"`      // 帖子核心数据
}

// PostDeletedEvent 帖子删除事件。
type PostDeletedEvent struct {
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	Post      PostEventData `json:"post"`
}

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendPostCreatedEvent 发送帖子创建事件到 Kafka
// - 意图: 将新创建的帖子通知给下游（搜索索引、风控等）
// - 输入: ctx context.Context 上下文, postData PostEventData 帖子核心数据
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostCreatedEvent(ctx context.Context, postData PostEventData) error {
	event := PostCreatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostCreated, event)
}

// SendPostDeletedEvent 发送帖子删除事件到 Kafka
// - 意图: 通知下游同步删除（例如从搜索索引中摘除）
func (p *KafkaProducer) SendPostDeletedEvent(ctx context.Context, postData PostEventData) error {
	event := PostDeletedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostDeleted, event)
}

// Close 关闭底层 writer，进程优雅关停时调用。
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
