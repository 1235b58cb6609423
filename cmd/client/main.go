package main

import (
	"github.com/bornholm/backlog/internal/command"
	"github.com/bornholm/backlog/internal/command/serve"
	"github.com/bornholm/backlog/internal/command/task"
)

func main() {
	command.Main(
		"backlog-cli", "a backlog client tool",
		task.Command(),
		serve.Command(),
	)
}
