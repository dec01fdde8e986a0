package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avikko/grocer-admin/internal/dash"
	"github.com/avikko/grocer-admin/internal/grocer"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "Manage the category tree",
}

var listSearch string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories as a flat table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current.controller
		if err := c.Reload(cmd.Context()); err != nil {
			return surfaceErr(err)
		}
		c.SetFilter(listSearch)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tPARENTS\tSHORT DESCRIPTION")
		for _, cat := range c.Visible() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cat.ID, cat.Name, variant(cat), joinIDs(cat.ParentCategoryIDs), cat.ShortDescription)
		}
		return w.Flush()
	},
}

var treeVerify bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the parent/sub-category hierarchy",
	Long: help(`
		Fetches the flat category list and reconstructs the two-level
		hierarchy locally. With --verify, each parent's sub-categories are
		also fetched from the getSubCategories endpoint and differences
		against the local reconstruction are reported.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := current.controller
		if err := c.Reload(cmd.Context()); err != nil {
			return surfaceErr(err)
		}

		h := c.Hierarchy()
		for _, group := range h.Groups() {
			printf("%s  %s\n", group.Parent.ID, group.Parent.Name)
			for _, sub := range group.Children {
				printf("  └─ %s  %s\n", sub.ID, sub.Name)
			}
		}
		for _, orphan := range h.Orphans() {
			printf("!  %s  %s (parents %s not found)\n",
				orphan.ID, orphan.Name, joinIDs(orphan.ParentCategoryIDs))
		}

		if !treeVerify {
			return nil
		}
		index, err := dash.FetchSubCategoryIndex(cmd.Context(), current.client, h.Parents())
		if err != nil {
			return surfaceErr(err)
		}
		for _, parent := range h.Parents() {
			local := len(h.Children(parent.ID))
			remote := len(index[parent.ID.Key()])
			if local != remote {
				printf("mismatch under %s (%s): %d local, %d from server\n",
					parent.Name, parent.ID, local, remote)
			}
		}
		return nil
	},
}

var payloadFlags struct {
	name    string
	short   string
	long    string
	cover   string
	parents []string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Long: help(`
		Creates a parent category, or a sub-category when at least one
		--parent is given. Name and short description are required; the
		short description is capped at 100 characters.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return savePayload(cmd, grocer.CategoryPayload{})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return savePayload(cmd, grocer.CategoryPayload{ID: grocer.ID(args[0])})
	},
}

func savePayload(cmd *cobra.Command, payload grocer.CategoryPayload) error {
	payload.Name = payloadFlags.name
	payload.ShortDescription = payloadFlags.short
	payload.LongDescription = payloadFlags.long
	payload.CoverImage = payloadFlags.cover
	for _, p := range payloadFlags.parents {
		payload.ParentCategoryIDs = append(payload.ParentCategoryIDs, grocer.ID(p))
	}
	payload.IsSubCategory = len(payload.ParentCategoryIDs) > 0

	saved, err := current.controller.Save(cmd.Context(), payload)
	if err != nil {
		return surfaceErr(err)
	}
	printf("Saved %s (%s)\n", saved.Name, saved.ID)
	return nil
}

var deleteParent string

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category, or detach it from one parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := current.controller.Delete(cmd.Context(), grocer.ID(args[0]), grocer.ID(deleteParent))
		if err != nil {
			return surfaceErr(err)
		}
		printf("Deleted %s\n", args[0])
		return nil
	},
}

func variant(cat grocer.Category) string {
	if cat.IsSubCategory {
		return "sub"
	}
	return "parent"
}

func joinIDs(ids []grocer.ID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func addPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&payloadFlags.name, "name", "", "category name (required)")
	cmd.Flags().StringVar(&payloadFlags.short, "short", "", "short description, max 100 characters (required)")
	cmd.Flags().StringVar(&payloadFlags.long, "long", "", "long description")
	cmd.Flags().StringVar(&payloadFlags.cover, "cover", "", "cover image URL")
	cmd.Flags().StringSliceVar(&payloadFlags.parents, "parent", nil, "parent category id, repeatable; makes this a sub-category")
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "filter by name or description, case-insensitive")
	treeCmd.Flags().BoolVar(&treeVerify, "verify", false, "cross-check against the getSubCategories endpoint")
	deleteCmd.Flags().StringVar(&deleteParent, "parent", "", "detach from this parent only")
	addPayloadFlags(createCmd)
	addPayloadFlags(updateCmd)
	categoriesCmd.AddCommand(listCmd, treeCmd, createCmd, updateCmd, deleteCmd)
}
