package main

import "puzzle-leaderboard/cmd"

func main() {
	cmd.Execute()
}
