package main

import (
	"errors"
	"log"

	"github.com/spf13/viper"

	"github.com/subtext-ml/subtext/retrieval"
	"github.com/subtext-ml/subtext/tokenizer"
)

// appConfig mirrors the optional subtext.yaml settings file.
type appConfig struct {
	Resources resourcesConfig `mapstructure:"resources"`
	Selector  selectorConfig  `mapstructure:"selector"`
}

type resourcesConfig struct {
	EncoderURL string `mapstructure:"encoder_url"`
	MergesURL  string `mapstructure:"merges_url"`
	VocabURL   string `mapstructure:"vocab_url"`
	CacheDir   string `mapstructure:"cache_dir"`
}

type selectorConfig struct {
	TopStopWords    int     `mapstructure:"top_stop_words"`
	StopDocFraction float64 `mapstructure:"stop_doc_fraction"`
	Smoothing       float64 `mapstructure:"smoothing"`
	TitleWeight     float64 `mapstructure:"title_weight"`
	SmoothIDF       bool    `mapstructure:"smooth_idf"`
}

// defaultAppConfig mirrors the library defaults.
func defaultAppConfig() appConfig {
	pre := tokenizer.DefaultPretrainedConfig()
	sel := retrieval.DefaultConfig()
	return appConfig{
		Resources: resourcesConfig{
			EncoderURL: pre.EncoderURL,
			MergesURL:  pre.MergesURL,
			VocabURL:   pre.VocabURL,
		},
		Selector: selectorConfig{
			TopStopWords:    sel.TopStopWords,
			StopDocFraction: sel.StopDocFraction,
			Smoothing:       sel.Smoothing,
			TitleWeight:     sel.TitleWeight,
			SmoothIDF:       sel.SmoothIDF,
		},
	}
}

// loadConfig reads subtext.yaml from the working directory when present.
// A missing file keeps the defaults; a malformed one is fatal.
func loadConfig() appConfig {
	cfg := defaultAppConfig()

	viper.SetConfigName("subtext")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg
		}
		log.Fatalf("read config: %v", err)
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	return cfg
}

// pretrained converts the file settings into a tokenizer.PretrainedConfig.
func (c appConfig) pretrained() tokenizer.PretrainedConfig {
	pre := tokenizer.DefaultPretrainedConfig()
	if c.Resources.EncoderURL != "" {
		pre.EncoderURL = c.Resources.EncoderURL
	}
	if c.Resources.MergesURL != "" {
		pre.MergesURL = c.Resources.MergesURL
	}
	if c.Resources.VocabURL != "" {
		pre.VocabURL = c.Resources.VocabURL
	}
	pre.CacheDir = c.Resources.CacheDir
	return pre
}

// selector converts the file settings into a retrieval.Config.
func (c appConfig) selector() retrieval.Config {
	cfg := retrieval.DefaultConfig()
	cfg.TopStopWords = c.Selector.TopStopWords
	cfg.StopDocFraction = c.Selector.StopDocFraction
	cfg.Smoothing = c.Selector.Smoothing
	cfg.TitleWeight = c.Selector.TitleWeight
	cfg.SmoothIDF = c.Selector.SmoothIDF
	return cfg
}
