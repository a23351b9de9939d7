// Package listing renders a read-only, post-assembly view of an ESET-VM2
// program: its resolved label addresses and its code/data layout. It never
// decodes machine code back into mnemonics (that would be a disassembler)
// — it only displays the mnemonic and operand text the parser already
// held, next to the byte/bit offsets the encoder resolved them to.
//
// Built with gdamore/tcell + rivo/tview: a tview.Application driving a
// handful of bordered panels, with Ctrl+C as the universal quit key. There
// is no breakpoints, stepping, or register file here — no running VM,
// only a finished assembly.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/eset-vm2/assembler/encoder"
	"github.com/eset-vm2/assembler/internal/config"
	"github.com/eset-vm2/assembler/parser"
)

// Show opens an interactive, read-only listing of program/image and blocks
// until the user quits (Ctrl+C or 'q'). cfg controls display details such
// as whether the data section is shown at all.
func Show(program *parser.Program, image *encoder.Image, cfg *config.Config) error {
	app := tview.NewApplication()

	instructionsView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	instructionsView.SetBorder(true).SetTitle(" Code ")
	instructionsView.SetText(renderInstructions(program, image))

	symbolsView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	symbolsView.SetBorder(true).SetTitle(" Labels ")
	symbolsView.SetText(renderSymbols(program, image))

	headerView := tview.NewTextView().
		SetDynamicColors(true)
	headerView.SetBorder(true).SetTitle(" Image ")
	headerView.SetText(renderHeader(image))

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(headerView, 5, 0, false).
		AddItem(tview.NewFlex().
			AddItem(instructionsView, 0, 2, false).
			AddItem(symbolsView, 0, 1, false), 0, 1, false)

	if cfg.Listing.ShowDataSection && len(program.DataSection) > 0 {
		dataView := tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(true).
			SetWrap(false)
		dataView.SetBorder(true).SetTitle(" Data ")
		dataView.SetText(renderData(program, cfg.Listing.BytesPerRow))
		layout.AddItem(dataView, 8, 0, false)
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}

func renderHeader(image *encoder.Image) string {
	return fmt.Sprintf(
		"magic: %s\ncode bytes: %d\ndata_size: %d\ndata_initial_length: %d",
		encoder.Magic, len(image.Code), image.DataSize, image.DataInitialLength)
}

func renderInstructions(program *parser.Program, image *encoder.Image) string {
	var sb strings.Builder
	for i, inst := range program.CodeSection {
		bitOffset := 0
		if i < len(image.InstructionOffsets) {
			bitOffset = image.InstructionOffsets[i]
		}
		fmt.Fprintf(&sb, "[yellow]%6d[white]  %s %s\n", bitOffset, inst.Mnemonic, formatArgs(inst.Args))
	}
	return sb.String()
}

func formatArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case parser.RegisterArg:
			if v.Width == nil {
				parts = append(parts, fmt.Sprintf("r%d", v.ID))
			} else {
				name := [...]string{"byte", "word", "dword", "qword"}[*v.Width]
				parts = append(parts, fmt.Sprintf("%s[r%d]", name, v.ID))
			}
		case string:
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func renderSymbols(program *parser.Program, image *encoder.Image) string {
	var sb strings.Builder

	codeNames := make([]string, 0, len(program.CodeLabels))
	for name := range program.CodeLabels {
		codeNames = append(codeNames, name)
	}
	sort.Strings(codeNames)

	fmt.Fprintln(&sb, "[green]code labels[white]")
	for _, name := range codeNames {
		idx := program.CodeLabels[name]
		bitOffset := 0
		if idx < len(image.InstructionOffsets) {
			bitOffset = image.InstructionOffsets[idx]
		}
		fmt.Fprintf(&sb, "  %-20s bit %d\n", name, bitOffset)
	}

	dataNames := make([]string, 0, len(program.DataLabels))
	for name := range program.DataLabels {
		dataNames = append(dataNames, name)
	}
	sort.Strings(dataNames)

	fmt.Fprintln(&sb, "\n[green]data labels[white]")
	for _, name := range dataNames {
		fmt.Fprintf(&sb, "  %-20s byte %d\n", name, program.DataLabels[name])
	}

	return sb.String()
}

func renderData(program *parser.Program, bytesPerRow int) string {
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}

	var sb strings.Builder
	for i := 0; i < len(program.DataSection); i += bytesPerRow {
		end := i + bytesPerRow
		if end > len(program.DataSection) {
			end = len(program.DataSection)
		}
		fmt.Fprintf(&sb, "%6d  % X\n", i, program.DataSection[i:end])
	}
	return sb.String()
}
