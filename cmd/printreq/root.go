package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"printfolio/internal/client"
	"printfolio/internal/config"
	"printfolio/internal/form"
	"printfolio/internal/validation"
	"printfolio/pkg/logger"
)

// ==================== 根命令 ====================

// app 命令共享的运行时依赖
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *client.IntakeClient

	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	v := config.New()

	root := &cobra.Command{
		Use:          "printreq",
		Short:        "Request a custom 3D print from Printfolio",
		Long:         "printreq browses the Printfolio portfolio and submits custom 3D print requests to the intake endpoint.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.configPath != "" {
				v.SetConfigFile(a.configPath)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("读取配置文件失败: %w", err)
				}
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return a.init(cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, false)
		},
	}

	flags := root.PersistentFlags()
	flags.String("endpoint", config.DefaultEndpoint, "intake endpoint base URL")
	flags.Duration("timeout", 15*time.Second, "request timeout")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	flags.StringVar(&a.configPath, "config", "", "config file (yaml)")
	_ = v.BindPFlag("printreq.endpoint", flags.Lookup("endpoint"))
	_ = v.BindPFlag("printreq.timeout", flags.Lookup("timeout"))

	root.AddCommand(
		newSubmitCmd(a),
		newFormCmd(a),
		newGalleryCmd(a),
	)

	return root
}

// init 非 verbose 时不输出日志，结果只通过标准输出/错误呈现
func (a *app) init(cfg *config.Config) error {
	log := zap.NewNop()
	if a.verbose {
		var err error
		log, err = logger.New(logger.Options{Level: "debug", Format: "console"})
		if err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = log
	a.client = client.NewIntakeClient(client.Options{
		Endpoint: cfg.PrintReq.Endpoint,
		Timeout:  cfg.PrintReq.Timeout,
		Debug:    a.verbose,
	})
	log.Debug("printreq 初始化完成", zap.String("endpoint", cfg.PrintReq.Endpoint), zap.Duration("timeout", cfg.PrintReq.Timeout))
	return nil
}

// newForm 表单规则与服务端共用同一套校验
func (a *app) newForm() *form.Controller {
	v := validation.New(validation.Options{
		MaxImageBytes:     a.cfg.Intake.MaxImageBytes,
		AllowedImageTypes: a.cfg.Intake.AllowedImageTypes,
	})
	return form.New(v, a.logger)
}
