package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/doclens/internal/action"
	"github.com/kalambet/doclens/internal/agent"
	"github.com/kalambet/doclens/internal/config"
	"github.com/kalambet/doclens/internal/extract"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Analyze a document with a natural language request",
	Long: `Analyze a document with a natural language request.

Examples:
  doclens ask "Summarize this report" --file ./report.pdf
  doclens ask "Who is mentioned in this document?" --file ./minutes.txt
  doclens ask "Translate this to French" --doc-id 4f1c2d
  doclens ask "What can you do?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		file, _ := cmd.Flags().GetString("file")
		docID, _ := cmd.Flags().GetString("doc-id")

		var content string
		if file != "" {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			text, fileType, err := extract.Process(data, file)
			if err != nil {
				return fmt.Errorf("extracting text: %w", err)
			}
			printStatus("Document", "%s (%s, %d chars)", file, fileType, len(text))
			content = text
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]any{"user_query": query}
		if content != "" {
			req["document_content"] = content
		}
		if docID != "" {
			req["document_id"] = docID
		}

		resp, err := client.post(cmd.Context(), "/api/process", req)
		if err != nil {
			return err
		}

		var env agent.Envelope
		if err := decodeJSON(resp, &env); err != nil {
			return err
		}

		return printEnvelope(env)
	},
}

func printEnvelope(env agent.Envelope) error {
	printStatus("Action", "%s", env.IntentAnalysis.Action)
	printStatus("Confidence", "%.1f", env.Confidence)
	if env.Complexity != "" {
		printStatus("Complexity", "%s", env.Complexity)
	}

	if env.ActionResult.IsError() {
		printError("%s", env.ActionResult.Err)
		return fmt.Errorf("analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(env.ActionResult)
}

// --- capabilities ---

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List supported analysis actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The capability catalog is compiled in; no server round-trip needed.
		for _, c := range action.Capabilities() {
			fmt.Printf("%s\n", colorize(colorBold, string(c.Action)))
			fmt.Printf("  %s\n", c.Description)
			for _, ex := range c.Examples {
				fmt.Printf("    e.g. %q\n", ex)
			}
		}
		return nil
	},
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/history?limit=%d", limit))
		if err != nil {
			return err
		}

		var analyses []struct {
			ID         string  `json:"ID"`
			UserQuery  string  `json:"UserQuery"`
			Action     string  `json:"Action"`
			Confidence float64 `json:"Confidence"`
		}
		if err := decodeJSON(resp, &analyses); err != nil {
			return err
		}

		if len(analyses) == 0 {
			fmt.Println("no analyses yet")
			return nil
		}

		for _, a := range analyses {
			fmt.Printf("%s  %s (%.1f)\n    %s\n",
				a.ID, colorize(colorBold, a.Action), a.Confidence, a.UserQuery)
		}
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	askCmd.Flags().String("file", "", "document file to analyze (.pdf, .txt, .md, .csv, .html)")
	askCmd.Flags().String("doc-id", "", "identifier of a previously uploaded document")

	historyCmd.Flags().Int("limit", 20, "maximum number of analyses to show")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
