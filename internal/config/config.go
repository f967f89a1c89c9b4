package config

import (
	"github.com/blues/cfl/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Funding  FundingConfig  `mapstructure:"funding"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 出金通道配置
type ChainConfig struct {
	RpcUrl        string `mapstructure:"rpc_url"`       // RPC节点URL
	ChainId       int64  `mapstructure:"chain_id"`      // 链ID
	PrivateKey    string `mapstructure:"private_key"`   // 出金账户私钥
	Confirmations int    `mapstructure:"confirmations"` // 确认区块数
	DryRun        bool   `mapstructure:"dry_run"`       // 使用内存通道，不上链
}

// FundingConfig 资金策略配置
type FundingConfig struct {
	MinCreationFee  string `mapstructure:"min_creation_fee"`  // 创建活动最低押金
	StorageByteCost string `mapstructure:"storage_byte_cost"` // 每字节存储费
	MinContribution string `mapstructure:"min_contribution"`  // 单笔出资下限，0表示不限
	ForfeitOnCancel bool   `mapstructure:"forfeit_on_cancel"` // 取消时是否没收未退出资
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"`  // 秒
	PoolSize int `mapstructure:"pool_size"` // 对账任务并发数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfl")

	// 默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.confirmations", 12)
	viper.SetDefault("chain.dry_run", false)
	viper.SetDefault("funding.min_creation_fee", "1000000000000000000")
	viper.SetDefault("funding.storage_byte_cost", "10000000000000")
	viper.SetDefault("funding.min_contribution", "0")
	viper.SetDefault("funding.forfeit_on_cancel", false)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
