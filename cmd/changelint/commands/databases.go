package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
)

var databasesJSON bool

func init() {
	databasesCmd.Flags().BoolVar(&databasesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(databasesCmd)
}

var databasesCmd = &cobra.Command{
	Use:     "databases",
	Aliases: []string{"dbs"},
	Short:   "List supported target databases",
	Long: `List the database engines changelint can validate against.

Engines that inherit from another engine, such as MariaDB from MySQL, are
subject to the rules of their ancestors as well as their own.`,
	Args: cobra.NoArgs,
	RunE: runDatabases,
}

// databaseInfo is the JSON form of one engine.
type databaseInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Parent      string   `json:"parent,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

func runDatabases(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	all := database.All()

	if databasesJSON {
		infos := make([]databaseInfo, len(all))
		for i, db := range all {
			infos[i] = databaseInfo{
				Name:        db.Short,
				DisplayName: db.DisplayName,
				Aliases:     database.AliasesOf(db.Short),
			}
			if db.Parent != nil {
				infos[i].Parent = db.Parent.Short
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(infos), "encoding databases")
	}

	bold := color.New(color.Bold)
	gray := color.New(color.FgHiBlack)
	for _, db := range all {
		line := bold.Sprintf("%-12s", db.Short) + " " + db.DisplayName
		var extra []string
		if db.Parent != nil {
			extra = append(extra, "inherits "+db.Parent.Short)
		}
		if aliases := database.AliasesOf(db.Short); len(aliases) > 0 {
			extra = append(extra, "aliases: "+strings.Join(aliases, ", "))
		}
		if len(extra) > 0 {
			line += " " + gray.Sprintf("(%s)", strings.Join(extra, "; "))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
