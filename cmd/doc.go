package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
)

var docCmd = &cobra.Command{
	Use:     "doc",
	Aliases: []string{"document"},
	Short:   "Keep travel documents with a trip",
}

var docAddCmd = &cobra.Command{
	Use:   "add <trip> <file>",
	Short: "Attach a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocAdd,
}

var docListCmd = &cobra.Command{
	Use:     "list <trip>",
	Aliases: []string{"ls"},
	Short:   "List a trip's documents",
	Args:    cobra.ExactArgs(1),
	RunE:    runDocList,
}

var docExportCmd = &cobra.Command{
	Use:   "export <document> [dir]",
	Short: "Write a document back to disk",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDocExport,
}

var docDeleteCmd = &cobra.Command{
	Use:     "delete <document>",
	Aliases: []string{"rm"},
	Short:   "Delete a document",
	Args:    cobra.ExactArgs(1),
	RunE:    runDocDelete,
}

var (
	docTitle string
	docType  string
)

func init() {
	names := make([]string, len(model.DocumentTypes))
	for i, t := range model.DocumentTypes {
		names[i] = string(t)
	}
	docAddCmd.Flags().StringVar(&docTitle, "title", "", "Title, defaults to the file name")
	docAddCmd.Flags().StringVarP(&docType, "type", "t", string(model.DocOther), "One of "+strings.Join(names, ", "))

	docCmd.AddCommand(docAddCmd, docListCmd, docExportCmd, docDeleteCmd)
	rootCmd.AddCommand(docCmd)
}

func runDocAdd(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		title := docTitle
		if title == "" {
			title = filepath.Base(args[1])
		}

		d, err := e.svc.Documents.AddFile(ctx, trip.ID, title, model.DocumentType(strings.ToLower(docType)), args[1])
		if err != nil {
			return err
		}
		fmt.Printf("  Attached %s to %s  (%s, %s)\n", d.Filename, trip.Title, d.ContentType, cli.FormatBytes(d.Size))
		return nil
	})
}

func runDocList(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		trip, err := e.tripID(ctx, args[0])
		if err != nil {
			return err
		}
		docs, err := e.svc.Documents.List(ctx, trip.ID)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Printf("\n  No documents for %s.\n", trip.Title)
			return nil
		}

		now := time.Now()
		var total int64
		rows := make([][]string, 0, len(docs))
		for _, d := range docs {
			total += d.Size
			rows = append(rows, []string{
				cli.ShortID(d.ID),
				d.Title,
				string(d.Type),
				d.Filename,
				cli.FormatBytes(d.Size),
				cli.FormatRelative(d.AddedAt, now),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Documents · " + trip.Title,
			Headers: []string{"ID", "Title", "Type", "File", "Size", "Added"},
			Rows:    rows,
		}))
		fmt.Printf("\n  %d documents, %s\n", len(docs), cli.FormatBytes(total))
		return nil
	})
}

func runDocExport(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Documents.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		path, err := e.svc.Documents.Export(ctx, id, dir)
		if err != nil {
			return err
		}
		fmt.Printf("  Wrote %s\n", path)
		return nil
	})
}

func runDocDelete(cmd *cobra.Command, args []string) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		id, err := e.svc.Documents.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		if err := e.svc.Documents.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted document %s\n", cli.ShortID(id))
		return nil
	})
}
