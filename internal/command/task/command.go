package task

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bornholm/backlog/internal/command/common"
	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagStatus = "status"
	flagYes    = "yes"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			toggleCommand(),
			deleteCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks, newest first",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:  flagStatus,
				Usage: "Only show tasks with this status ('incomplete' or 'complete')",
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			backlogClient, err := common.GetBacklogClient(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			var listOptions []client.ListTasksOptionFunc
			if rawStatus := cCtx.String(flagStatus); rawStatus != "" {
				status := model.Status(rawStatus)
				if !status.IsValid() {
					return errors.Errorf("invalid status '%s'", rawStatus)
				}

				listOptions = append(listOptions, client.WithListTasksStatus(status))
			}

			tasks, err := backlogClient.ListTasks(ctx, listOptions...)
			if err != nil {
				return errors.WithStack(err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tCREATED")

			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, t.CreatedAt.Local().Format("2006-01-02 15:04"))
			}

			return errors.WithStack(w.Flush())
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new task",
		ArgsUsage: "<title>",
		Flags:     common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			title := strings.Join(cCtx.Args().Slice(), " ")
			if strings.TrimSpace(title) == "" {
				return errors.New("a task title is required")
			}

			backlogClient, err := common.GetBacklogClient(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			if err := backlogClient.CreateTask(ctx, title); err != nil {
				return errors.WithStack(err)
			}

			fmt.Println("task created")

			return nil
		},
	}
}

func toggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Toggle the completion status of a task",
		ArgsUsage: "<task-id>",
		Flags:     common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			id := cCtx.Args().First()
			if id == "" {
				return errors.New("a task id is required")
			}

			backlogClient, err := common.GetBacklogClient(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			view := client.NewTaskView(backlogClient)

			if err := view.Refresh(ctx); err != nil {
				return errors.WithStack(err)
			}

			if err := view.Toggle(ctx, id); err != nil {
				return errors.WithStack(err)
			}

			fmt.Println("task updated")

			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a task",
		ArgsUsage: "<task-id>",
		Flags: common.WithCommonFlags(
			&cli.BoolFlag{
				Name:    flagYes,
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			id := cCtx.Args().First()
			if id == "" {
				return errors.New("a task id is required")
			}

			backlogClient, err := common.GetBacklogClient(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			view := client.NewTaskView(backlogClient)

			if err := view.Refresh(ctx); err != nil {
				return errors.WithStack(err)
			}

			confirm := func() bool {
				if cCtx.Bool(flagYes) {
					return true
				}

				fmt.Printf("delete task %s? this cannot be undone [y/N] ", id)

				reader := bufio.NewReader(os.Stdin)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return false
				}

				return strings.EqualFold(strings.TrimSpace(answer), "y")
			}

			if err := view.Delete(ctx, id, confirm); err != nil {
				if errors.Is(err, client.ErrDeleteAborted) {
					fmt.Println("aborted")
					return nil
				}

				return errors.WithStack(err)
			}

			fmt.Println("task deleted")

			return nil
		},
	}
}
