package main

import (
	"carwash/inventory"
	"carwash/repository"
	"carwash/service"
	"carwash/utils"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	exportFrom  string
	exportTo    string
	exportPosID int
	exportOut   string
	treeFile    string
	treeSearch  string
)

var exportShiftsCmd = &cobra.Command{
	Use:   "export-shifts",
	Short: "Write shift payouts of a date range to an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := exportFilter(exportFrom, exportTo, exportPosID)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("shifts_%s_%s.xlsx", filter.From.Format(time.DateOnly), filter.To.Format(time.DateOnly))
		}
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		err = writeAndClose(file, func(w io.Writer) error {
			return service.NewShiftService(db, nil, nil).ExportShiftReports(w, filter)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

// writeAndClose reports the close error too, a failed flush leaves a broken file.
func writeAndClose(file io.WriteCloser, write func(w io.Writer) error) error {
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not finish writing: %w", err)
	}
	return nil
}

func exportFilter(from string, to string, posId int) (repository.ShiftFilter, error) {
	filter := repository.ShiftFilter{}
	var err error
	if filter.From, err = time.Parse(time.DateOnly, from); err != nil {
		return filter, fmt.Errorf("invalid --from: %w", err)
	}
	if filter.To, err = time.Parse(time.DateOnly, to); err != nil {
		return filter, fmt.Errorf("invalid --to: %w", err)
	}
	if filter.From.After(filter.To) {
		return filter, fmt.Errorf("--from %s is after --to %s", from, to)
	}
	if posId != 0 {
		filter.PosID = &posId
	}
	return filter, nil
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the warehouse category tree",
	Long: `Print the warehouse category tree and every category that cannot be placed.

With --file a flat JSON category list is read instead of the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree()
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), tree.Filter(treeSearch))
		return nil
	},
}

func loadTree() (*inventory.Tree, error) {
	if treeFile != "" {
		file, err := os.Open(treeFile)
		if err != nil {
			return nil, err
		}
		defer utils.Closer(file)()
		var categories []inventory.Category
		if err := json.NewDecoder(file).Decode(&categories); err != nil {
			return nil, fmt.Errorf("invalid category list: %w", err)
		}
		return inventory.BuildTree(categories), nil
	}
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewCategoryService(db).GetCategoryTree("")
}

func printTree(w io.Writer, tree *inventory.Tree) {
	tree.Walk(func(node *inventory.CategoryNode, depth int) bool {
		fmt.Fprintf(w, "%s%s (#%d)\n", strings.Repeat("  ", depth), node.Name, node.ID)
		return true
	})
	if len(tree.Issues) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d categories could not be placed:\n", len(tree.Issues))
	for _, issue := range tree.Issues {
		fmt.Fprintf(w, "  #%d %s (owner %s)\n", issue.CategoryID, issue.Kind, issue.OwnerCategoryID)
	}
}

func init() {
	exportShiftsCmd.Flags().StringVar(&exportFrom, "from", "", "First shift date (YYYY-MM-DD)")
	exportShiftsCmd.Flags().StringVar(&exportTo, "to", "", "Last shift date (YYYY-MM-DD)")
	exportShiftsCmd.Flags().IntVar(&exportPosID, "pos-id", 0, "Only shifts of this point of sale")
	exportShiftsCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: shifts_<from>_<to>.xlsx)")
	_ = exportShiftsCmd.MarkFlagRequired("from")
	_ = exportShiftsCmd.MarkFlagRequired("to")

	treeCmd.Flags().StringVar(&treeFile, "file", "", "Flat JSON category list to build the tree from")
	treeCmd.Flags().StringVar(&treeSearch, "search", "", "Only show categories matching this text and their owners")
}
