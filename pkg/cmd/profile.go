package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/profile"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

var profileCmd = &cobra.Command{
	Use:   "profile [flags] profile_string",
	Short: "Decode a target profile string (e.g. ps_4_0, vs_4_0_level_9_1).",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		p, ok := profile.Decode(args[0])
		if !ok {
			sink := diag.NewLogrusSink()
			sink.Report(diag.Diagnostic{
				Span:     source.Span{},
				Severity: diag.Error,
				Code:     diag.InvalidProfile,
				Message:  fmt.Sprintf("invalid profile string %q", args[0]),
			})
			os.Exit(2)
		}
		//
		fmt.Printf("kind:          %s\n", p.Kind)
		fmt.Printf("shader model:  %d.%d\n", p.Major, p.Minor)
		//
		if p.HasLevel {
			fmt.Printf("feature level: %d_%d\n", p.LevelMajor, p.LevelMinor)
		}
		//
		fmt.Printf("software:      %t\n", p.Software)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
