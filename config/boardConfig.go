package config

import "github.com/Xushengqwer/go-common/config"

// BoardConfig 是本服务的聚合配置，进程启动时一次性加载，生命周期内视为不可变。
type BoardConfig struct {
	ZapConfig     config.ZapConfig     `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig config.GormLogConfig `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig  config.ServerConfig  `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig  config.TracerConfig  `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	MySQLConfig   MySQLConfig          `mapstructure:"mysqlConfig" json:"mysqlConfig" yaml:"mysqlConfig"`
	RedisConfig   RedisConfig          `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig   KafkaConfig          `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	BoardsConfig  BoardsConfig         `mapstructure:"boardsConfig" json:"boardsConfig" yaml:"boardsConfig"`
	RankConfig    RankConfig           `mapstructure:"rankConfig" json:"rankConfig" yaml:"rankConfig"`
	RenderConfig  RenderConfig         `mapstructure:"renderConfig" json:"renderConfig" yaml:"renderConfig"`
}
