package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the predefined type names installed into a fresh compile context.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.New(diag.NewLogrusSink())
		//
		names := make([]string, 0, len(ctx.AllTypes()))
		for _, t := range ctx.AllTypes() {
			names = append(names, t.String())
		}
		//
		printColumns(names, terminalWidth())
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

// terminalWidth returns the current terminal's column count, falling back to
// 80 when stdout is not a terminal (e.g. piped output).
func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	//
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	//
	return w
}

// printColumns lays names out left-to-right, wrapping once a line would
// exceed width, the way a terminal `ls` does.
func printColumns(names []string, width int) {
	longest := 0
	for _, n := range names {
		if len(n) > longest {
			longest = len(n)
		}
	}
	//
	colWidth := longest + 2
	perLine := width / colWidth
	if perLine < 1 {
		perLine = 1
	}
	//
	var line strings.Builder
	//
	for i, n := range names {
		line.WriteString(fmt.Sprintf("%-*s", colWidth, n))
		//
		if (i+1)%perLine == 0 {
			fmt.Println(strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	//
	if line.Len() > 0 {
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
}
