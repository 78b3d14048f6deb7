package main

import "github.com/ccamposlozano/fitness-tracker-ai/cmd/fittrack"

func main() {
	fittrack.Execute()
}
