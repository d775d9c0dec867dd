package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagecraft/contactd"
	"github.com/pagecraft/contactd/pkg/contact"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "contactd",
	Short: "contactd - contact form backend",
	Long: `contactd accepts contact form submissions over HTTP, filters abuse,
emails the site operator and sends the submitter a confirmation.

Configuration comes from the environment; a .env file is loaded first when present.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := contactd.Load(envFiles...)
		if err != nil {
			return err
		}

		log, closer := contactd.NewLogger(cfg)
		defer closer.Close()

		srv, err := contactd.New(cmd.Context(), cfg, log)
		if err != nil {
			log.Error("failed to start", slog.String("error", err.Error()))
			return err
		}
		return srv.Run(cmd.Context())
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the notification and confirmation emails for a sample submission",
	Long: `Render both emails with the configured templates and print them to stdout.
Nothing is delivered and no rate limit is applied.

Example:
  contactd preview
  contactd preview --first-name Grace --last-name Hopper --html`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := contactd.Load(envFiles...)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		firstName, _ := flags.GetString("first-name")
		lastName, _ := flags.GetString("last-name")
		email, _ := flags.GetString("email")
		message, _ := flags.GetString("message")
		html, _ := flags.GetBool("html")

		return contactd.Preview(cmd.Context(), cmd.OutOrStdout(), cfg, contact.Input{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Message:   message,
		}, html)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	previewCmd.Flags().String("first-name", "Ada", "submitter first name")
	previewCmd.Flags().String("last-name", "Lovelace", "submitter last name")
	previewCmd.Flags().String("email", "ada@example.com", "submitter email")
	previewCmd.Flags().String("message", "Hello! I would like to talk about a project.", "message body")
	previewCmd.Flags().Bool("html", false, "also print the HTML part")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
