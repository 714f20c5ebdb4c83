package main

import "github.com/marhaba-bot/marhaba/cmd"

func main() {
	cmd.Execute()
}
