package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopauth/lib/myconfig"
	"github.com/MarcGrol/shopauth/services/shopifyauth"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webserver (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd := &cobra.Command{
		Use:          "shopauth",
		Short:        "Shopify app installation backend",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	rootCmd.AddCommand(serveCmd, newAuthURLCommand())

	return rootCmd
}

func newAuthURLCommand() *cobra.Command {
	var shop string

	cmd := &cobra.Command{
		Use:   "authurl",
		Short: "Print the url that starts the installation for a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := myconfig.Load()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), shopifyauth.BuildAuthURL(shop, cfg))
			return err
		},
	}
	cmd.Flags().StringVar(&shop, "shop", "", "shop domain, e.g. my-shop.myshopify.com")
	_ = cmd.MarkFlagRequired("shop")

	return cmd
}
