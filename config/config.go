package config

type AppConfig struct {
	AggregateConfig *AggregateConfig
}

func New() *AppConfig {
	return &AppConfig{
		AggregateConfig: NewAggregateConfig(),
	}
}
