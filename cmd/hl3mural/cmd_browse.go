package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/totegamma/hl3mural/client"
	"github.com/totegamma/hl3mural/internal/mural"
	"github.com/totegamma/hl3mural/internal/mural/tui"
)

var (
	browseEndpoint string
	browseForm     string
	browseMargin   int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the mural in the terminal",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseEndpoint, "endpoint", "e", "http://localhost:8000", "Proxy base URL; "+client.SubmissionsPath+" is appended when it has no path")
	browseCmd.Flags().StringVarP(&browseForm, "form", "f", "", "Form name (server default when empty)")
	browseCmd.Flags().IntVar(&browseMargin, "margin", tui.DefaultMarginRows, "Rows before the end that trigger the next page")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// log lines would tear the alt screen
	if !verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	controller := mural.NewController(client.New(browseEndpoint), mural.WithForm(browseForm))
	model := tui.New(cmd.Context(), controller, browseMargin)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
