package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"focusrune/internal/client"
	"focusrune/pkg/task"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := api.Tasks(ctx(cmd))
		if err != nil {
			return err
		}
		if short, _ := cmd.Flags().GetBool("short"); short {
			printShortTasks(os.Stdout, tasks)
			return nil
		}
		return printJSON(tasks)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := client.TaskInput{Title: args[0]}
		in.Priority, _ = cmd.Flags().GetString("priority")
		in.DueDate, _ = cmd.Flags().GetString("due")
		in.Recurring, _ = cmd.Flags().GetString("repeat")
		t, err := api.Add(ctx(cmd), in)
		if err != nil {
			return err
		}
		return printJSON(t)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task's fields; pass an empty value to clear one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]string{}
		for flag, key := range map[string]string{
			"title":    "title",
			"priority": "priority",
			"due":      "dueDate",
			"repeat":   "recurring",
		} {
			if cmd.Flags().Changed(flag) {
				fields[key], _ = cmd.Flags().GetString(flag)
			}
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to change")
		}
		st, err := api.Edit(ctx(cmd), args[0], fields)
		if err != nil {
			return err
		}
		printShortTasks(os.Stdout, st.Tasks)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task done or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := api.Toggle(ctx(cmd), args[0])
		if err != nil {
			return err
		}
		printShortTasks(os.Stdout, st.Tasks)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := api.Delete(ctx(cmd), args[0])
		if err != nil {
			return err
		}
		printShortTasks(os.Stdout, st.Tasks)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move the task at index from to index to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := indexArgs(args)
		if err != nil {
			return err
		}
		st, err := api.Reorder(ctx(cmd), from, to)
		if err != nil {
			return err
		}
		printShortTasks(os.Stdout, st.Tasks)
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.Undo(ctx(cmd))
		if err != nil {
			return err
		}
		if !res.Changed {
			fmt.Println("Nothing to undo.")
			return nil
		}
		printShortTasks(os.Stdout, res.State.Tasks)
		return nil
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.Redo(ctx(cmd))
		if err != nil {
			return err
		}
		if !res.Changed {
			fmt.Println("Nothing to redo.")
			return nil
		}
		printShortTasks(os.Stdout, res.State.Tasks)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("short", false, "one line per task")

	addCmd.Flags().String("priority", "", "low, medium or high (default medium)")
	addCmd.Flags().String("due", "", "due date, YYYY-MM-DD")
	addCmd.Flags().String("repeat", "", "daily, weekly, monthly or none")

	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("priority", "", "low, medium or high")
	editCmd.Flags().String("due", "", "due date, YYYY-MM-DD")
	editCmd.Flags().String("repeat", "", "daily, weekly, monthly or none")
}

// printShortTasks prints one line per task. IDs are never shortened.
func printShortTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%2d [%s] %-36s  %-6s  %-10s  %-7s  %s\n",
			i, done, t.ID, t.Priority.Label(), t.DueDate.String(), t.Recurring.Label(), truncStr(t.Title, 60))
	}
}
