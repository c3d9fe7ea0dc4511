package main

import (
	"github.com/spf13/cobra"

	"github.com/dep2p/go-eventcore"
	"github.com/dep2p/go-eventcore/config"
	"github.com/dep2p/go-eventcore/internal/util/logger"
)

var log = logger.Logger("eventcore/cmd")

// globalFlags 所有子命令共享的参数
type globalFlags struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "eventcore",
		Short:         "In-process multicast event dispatch",
		Long:          "eventcore runs and benchmarks the synchronous and asynchronous multicast event dispatchers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "config file (.json, .yaml, .toml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level spec, e.g. \"core/eventbus=debug,info\"")

	root.AddCommand(
		newRunCmd(g),
		newBenchCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// loadConfig 加载配置文件，未指定时返回默认配置
func (g *globalFlags) loadConfig() (*config.Config, error) {
	if g.configFile == "" {
		return config.NewConfig(), nil
	}
	return config.LoadFile(g.configFile)
}

// runtimeOptions 把全局参数转换为运行时选项
func (g *globalFlags) runtimeOptions() []eventcore.Option {
	var opts []eventcore.Option
	if g.configFile != "" {
		opts = append(opts, eventcore.WithConfigFile(g.configFile))
	}
	if g.logLevel != "" {
		opts = append(opts, eventcore.WithLogLevel(g.logLevel))
	}
	return opts
}
