package main

import "github.com/Keerthi292/Emotion-Recognition-system/cmd"

func main() {
	cmd.Execute()
}
