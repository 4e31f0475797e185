package cmd

import (
	"github.com/readmelens/readmelens/cmd/serve"
	"github.com/readmelens/readmelens/cmd/version"
	"github.com/readmelens/readmelens/config"
	"github.com/readmelens/readmelens/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands

func NewRootCmd(configCMD config.ConfigCMD) *cobra.Command {
	logger := logger.NewDefault()
	rootCmd := &cobra.Command{
		Use:   "readmelens",
		Short: "A GitHub README rendering API server",
		Long:  `readmelens is an API server that fetches GitHub repository READMEs and renders them as sanitized HTML.`,
	}

	rootCmd.AddCommand(serve.Command(configCMD, logger))
	rootCmd.AddCommand(version.NewVersionCmd())
	return rootCmd
}
