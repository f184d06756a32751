// summary.go renders the non-interactive output for the -l flag: a fixed
// human-readable snapshot block followed by the fit table. The format is a
// reading convenience, not a machine interface.
package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
)

func printSummary(w io.Writer, specs hardware.SystemSnapshot, fits []fit.Assessment) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== System Specifications ===")
	fmt.Fprintf(w, "CPU: %s (%d cores)\n", specs.CPUName, specs.TotalCPUCores)
	fmt.Fprintf(w, "Total RAM: %.2f GB\n", specs.TotalRAMGB)
	fmt.Fprintf(w, "Available RAM: %.2f GB\n", specs.AvailableRAMGB)
	fmt.Fprintln(w, gpuSummary(specs))
	fmt.Fprintln(w)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Model", "Provider", "Params", "VRAM", "RAM", "Mode", "Mem %", "Fit", "Use Case"})
	tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tw.SetCenterSeparator("|")
	tw.SetColumnSeparator("|")
	tw.SetRowSeparator("-")
	tw.SetAutoWrapText(false)

	for _, f := range fits {
		tw.Append([]string{
			f.Model.Name,
			f.Model.Provider,
			f.Model.ParameterCount,
			formatVRAM(f.Model.MinVRAMGB),
			fmt.Sprintf("%.1f GB", f.Model.MinRAMGB),
			f.RunMode.String(),
			fmt.Sprintf("%.0f%%", f.UtilizationPct),
			f.FitLevel.String(),
			truncate(f.Model.UseCase, 40),
		})
	}

	tw.Render()
}
