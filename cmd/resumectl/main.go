package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"resume-editor/internal/config"
)

var (
	apiFlag     string
	timeoutFlag time.Duration
	chromePath  string
	rootCmd     = &cobra.Command{
		Use:           "resumectl",
		Short:         "Validate, render and sync resume documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	env, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	chromePath = env.ChromePath
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", env.StoreURL, "Resume store base URL")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", env.StoreTimeout, "Timeout for store and render calls")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
