package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusrune/pkg/category"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List categories, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := ""
		if len(args) == 1 {
			q = args[0]
		}
		cats, err := api.Categories(ctx(cmd), q)
		if err != nil {
			return err
		}
		printCategories(cats)
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := api.AddCategory(ctx(cmd), args[0])
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := api.RenameCategory(ctx(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.DeleteCategory(ctx(cmd), args[0])
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move the category at index from to index to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := indexArgs(args)
		if err != nil {
			return err
		}
		cats, err := api.ReorderCategories(ctx(cmd), from, to)
		if err != nil {
			return err
		}
		printCategories(cats)
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd, categoryRmCmd, categoryMoveCmd)
}

func printCategories(cats []category.Category) {
	if len(cats) == 0 {
		fmt.Println("No categories.")
		return
	}
	for i, c := range cats {
		fmt.Printf("%2d  %-36s  %-20s  %s\n", i, c.ID, c.Name, c.Color)
	}
}
