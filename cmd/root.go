package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/product-console/internal/app"
	"github.com/nguyentranbao-ct/product-console/internal/server"
	"github.com/nguyentranbao-ct/product-console/internal/shell"
	"github.com/nguyentranbao-ct/product-console/pkg/crypto"
)

var rootCmd = &cobra.Command{
	Use:           "product-console",
	Short:         "Manage products against the product API from a browser or a terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web console",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(server.StartServer).Run()
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive terminal console",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(shell.Start).Run()
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a new SESSION_ENCRYPTION_KEY",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := crypto.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, shellCmd, keygenCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
