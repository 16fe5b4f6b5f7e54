package main

import "github.com/Desmoss900/srt2dvbsub/internal/cli"

func main() {
	cli.Execute()
}
