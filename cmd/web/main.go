package main

import "debatecamp/internal/app"

func main() {
	app.Run()
}
