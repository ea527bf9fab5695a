package commands

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
)

// errNoSelection is returned when the picker is dismissed.
var errNoSelection = errors.New("no database selected")

// pickDatabase asks the user to choose a target database. It is a
// variable so tests can replace the terminal UI.
var pickDatabase = func() (*database.Database, error) {
	dbs := database.All()
	idx, err := fuzzyfinder.Find(
		dbs,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", dbs[i].DisplayName, dbs[i].Short)
		},
		fuzzyfinder.WithPromptString("database> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			db := dbs[i]
			parents := "none"
			if lineage := db.Lineage(); len(lineage) > 1 {
				parents = strings.Join(lineage[1:], " -> ")
			}
			return fmt.Sprintf("Name: %s\nShort name: %s\nInherits rules from: %s",
				db.DisplayName, db.Short, parents)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errNoSelection
		}
		return nil, errors.Wrap(err, "selecting database")
	}
	return dbs[idx], nil
}
