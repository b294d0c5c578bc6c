// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardex/internal/deck"
	"github.com/pdiddy/cardex/pkg/types"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the local card deck (store, retrieve, export)",
	Long: `Deck manages a local SQLite database of extracted quiz cards. Use
subcommands to ingest extracted CSV files, query cards, or export the
whole deck.`,
}

// --- store subcommand ---

var deckStoreCmd = &cobra.Command{
	Use:   "store [csv files...]",
	Short: "Ingest extracted CSV files into the deck",
	Long: `Store reads cardex CSV files, ingests their cards into the deck
database with FTS5 indexing, and refreshes the YAML export. Files that
have not changed since the last ingest are skipped.`,
	RunE: runDeckStore,
}

func runDeckStore(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more extracted CSV files")
	}

	store, err := openDeck(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var deckRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the deck with full-text search and filters",
	Long: `Retrieve searches the deck using FTS5 full-text search over reference,
question, and answer text, structured filters (type, club, ref, source),
or a combination of both.`,
	RunE: runDeckRetrieve,
}

func runDeckRetrieve(cmd *cobra.Command, args []string) error {
	store, err := openDeck(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --type, --club, --ref, or --source")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []deck.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-16s  %-44s  %-30s  %s\n",
		"Type", "Ref", "Question", "Answer", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-6s  %-16s  %-44s  %-30s  %s\n",
			r.Type, clip(r.Ref, 16), clip(r.Question, 44), clip(r.Answer, 30), r.Source)
	}
	return nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// --- export subcommand ---

var deckExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the deck to YAML and JSON files",
	RunE:  runDeckExport,
}

func runDeckExport(cmd *cobra.Command, args []string) error {
	store, err := openDeck(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, nil)
	ctx := context.Background()
	if err := store.ExportYAML(ctx, opts); err != nil {
		return err
	}
	if err := store.ExportJSON(ctx, opts); err != nil {
		return err
	}
	fmt.Println("Exported deck to index/export.yaml and index/export.json")
	return nil
}

// --- shared helpers ---

func openDeck(cmd *cobra.Command) (*deck.Store, error) {
	deckDir, _ := cmd.Flags().GetString("deck-dir")
	if deckDir == "" {
		deckDir = viper.GetString("deck.deck_dir")
	}
	if deckDir == "" {
		deckDir = "deck"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("deck.max_results")
	}

	return deck.NewStore(types.DeckConfig{
		DeckDir:    deckDir,
		MaxResults: maxResults,
	})
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) deck.QueryOpts {
	typ, _ := cmd.Flags().GetString("type")
	club, _ := cmd.Flags().GetString("club")
	ref, _ := cmd.Flags().GetString("ref")
	source, _ := cmd.Flags().GetString("source")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return deck.QueryOpts{
		Query:      strings.Join(args, " "),
		Type:       typ,
		Club:       club,
		Ref:        ref,
		Source:     source,
		MaxResults: maxResults,
	}
}

func init() {
	deckCmd.PersistentFlags().String("deck-dir", "", "base directory for the deck (default deck)")

	deckRetrieveCmd.Flags().String("type", "", "filter by card type (e.g. SIT)")
	deckRetrieveCmd.Flags().String("club", "", "filter by club")
	deckRetrieveCmd.Flags().String("ref", "", "filter by reference prefix (e.g. \"John 3\")")
	deckRetrieveCmd.Flags().String("source", "", "filter by source CSV file name")
	deckRetrieveCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")
	deckRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	deckExportCmd.Flags().String("type", "", "filter by card type")
	deckExportCmd.Flags().String("club", "", "filter by club")
	deckExportCmd.Flags().String("ref", "", "filter by reference prefix")
	deckExportCmd.Flags().String("source", "", "filter by source CSV file name")
	deckExportCmd.Flags().Int("max-results", 0, "limit exported cards (default all)")

	deckCmd.AddCommand(deckStoreCmd, deckRetrieveCmd, deckExportCmd)
	rootCmd.AddCommand(deckCmd)
}
