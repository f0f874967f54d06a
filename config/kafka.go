package config

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics  Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
}

type Topics struct {
	PostCreated string `mapstructure:"postCreated" yaml:"postCreated"` //  帖子创建主题，供搜索/审核等下游消费
	PostDeleted string `mapstructure:"postDeleted" yaml:"postDeleted"` //  帖子删除主题
}
