package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/jotbot/internal/config"
	"github.com/nextlevelbuilder/jotbot/internal/store"
	"github.com/nextlevelbuilder/jotbot/internal/store/pg"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Operator access to stored notes and tasks",
	}
	cmd.AddCommand(itemsListCmd())
	cmd.AddCommand(itemsPurgeCmd())
	cmd.AddCommand(itemsDoneCmd())
	return cmd
}

// openItemStore connects to Postgres using the loaded config.
// The caller must Close the returned DB.
func openItemStore() (*sql.DB, *pg.ItemStore, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, nil, err
	}
	db, err := pg.OpenDB(cfg.Database.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return db, pg.NewItemStore(db), nil
}

func itemsListCmd() *cobra.Command {
	var ownerID int64
	var kindFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's notes and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := openItemStore()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			var items []store.Item
			if kindFlag != "" {
				kind, err := store.ParseKind(kindFlag)
				if err != nil {
					return err
				}
				items, err = st.ListKind(ctx, kind, ownerID)
				if err != nil {
					return err
				}
			} else {
				items, err = st.List(ctx, ownerID)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				data, _ := json.MarshalIndent(items, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tDONE\tCREATED\tTEXT")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
					it.ID, it.Kind, it.Done, it.CreatedAt.Format("2006-01-02 15:04"), it.Text)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner (Telegram user ID)")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "filter by kind: note or task")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func itemsPurgeCmd() *cobra.Command {
	var ownerID int64
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all of a user's items of one kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			db, st, err := openItemStore()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := st.DeleteAll(cmd.Context(), kind, ownerID)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d %s(s) for owner %d.\n", n, kind, ownerID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner (Telegram user ID)")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "kind: note or task")
	cmd.MarkFlagRequired("owner")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func itemsDoneCmd() *cobra.Command {
	var undone bool

	cmd := &cobra.Command{
		Use:   "done <item-id>",
		Short: "Mark a task done (or not done with --undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id: %w", err)
			}

			db, st, err := openItemStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := st.SetDone(context.Background(), id, !undone); err != nil {
				return err
			}
			state := "done"
			if undone {
				state = "not done"
			}
			fmt.Printf("Task %s marked %s.\n", id, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undone, "undone", false, "mark the task as not done")
	return cmd
}
