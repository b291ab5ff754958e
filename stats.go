package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shirerpeton/srtReflow/internal/common"
)

func printStats(files []*common.ConvertFile) {
	for _, file := range files {
		color.Set(color.FgYellow)
		fmt.Print("input: ")
		color.Set(color.FgGreen)
		fmt.Printf("%s\n", file.Input)
		color.Set(color.FgYellow)
		fmt.Print("blocks: ")
		color.Set(color.FgGreen)
		fmt.Printf("%d\n", file.SourceBlocks)
		color.Set(color.FgYellow)
		fmt.Print("characters: ")
		color.Set(color.FgGreen)
		fmt.Printf("%d\n", file.CharsBefore)
		color.Set(color.FgYellow)
		fmt.Print("output: ")
		color.Set(color.FgMagenta)
		fmt.Printf("%s\n", file.Output)
		color.Set(color.FgYellow)
		fmt.Print("converted: ")
		color.Set(color.FgMagenta)
		fmt.Printf("%d blocks, %d characters\n", file.OutputBlocks, file.CharsAfter)
		color.Unset()
		fmt.Println()
	}
}
